// SPDX-License-Identifier: EPL-2.0

package ogg

// Packet is one reassembled packet of a logical stream.
type Packet struct {
	Serial uint32
	Data   []byte
	// Granule is the granule position of the page on which the packet ends.
	Granule int64
	// First is set for the first packet of its logical stream.
	First bool
	// Last is set for the final packet completed on an EOS page.
	Last bool
}

// PacketReader reassembles packets from the pages of a buffer. Packets of
// multiplexed logical streams are returned in the order they complete.
type PacketReader struct {
	pages   *Reader
	partial map[uint32][]byte
	started map[uint32]bool
	queue   []Packet
}

func NewPacketReader(buf []byte) *PacketReader {
	return &PacketReader{
		pages:   NewReader(buf),
		partial: make(map[uint32][]byte),
		started: make(map[uint32]bool),
	}
}

// Next returns the next complete packet. Page errors, including io.EOF at
// the end of the buffer, are returned as is. A packet still open when the
// buffer ends is dropped.
func (r *PacketReader) Next() (Packet, error) {
	for len(r.queue) == 0 {
		page, err := r.pages.Next()
		if err != nil {
			return Packet{}, err
		}

		r.push(page)
	}

	p := r.queue[0]
	r.queue = r.queue[1:]

	return p, nil
}

func (r *PacketReader) push(page Page) {
	partial, open := r.partial[page.Serial]
	if !page.Continued() && open {
		// The previous page promised a continuation that never came.
		partial, open = nil, false
	}

	skip := page.Continued() && !open
	var completed []Packet
	start := 0

	for i, l := range page.Lacing {
		end := start + int(l)

		if l == 255 {
			if !skip {
				partial = append(partial, page.Body[start:end]...)
				open = true
			}
			start = end
			continue
		}

		if skip {
			// Tail of a packet whose head was never seen.
			skip = false
			start = end
			continue
		}

		var data []byte
		if open {
			data = append(partial, page.Body[start:end]...)
		} else {
			data = page.Body[start:end:end]
		}

		completed = append(completed, Packet{
			Serial:  page.Serial,
			Data:    data,
			Granule: page.Granule,
			First:   !r.started[page.Serial],
			Last:    page.EOS() && i == lastTerminator(page.Lacing),
		})
		r.started[page.Serial] = true

		partial, open = nil, false
		start = end
	}

	if open {
		r.partial[page.Serial] = partial
	} else {
		delete(r.partial, page.Serial)
	}

	r.queue = append(r.queue, completed...)
}

// lastTerminator returns the index of the last lacing value that ends a
// packet, or -1.
func lastTerminator(lacing []byte) int {
	for i := len(lacing) - 1; i >= 0; i-- {
		if lacing[i] != 255 {
			return i
		}
	}
	return -1
}
