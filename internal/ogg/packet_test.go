// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmeta/internal/audiotest"
)

func readAll(t *testing.T, buf []byte) []Packet {
	t.Helper()

	r := NewPacketReader(buf)

	var packets []Packet
	for {
		p, err := r.Next()
		if errors.Is(err, io.EOF) {
			return packets
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		packets = append(packets, p)
	}
}

func TestPacketReader_SinglePage(t *testing.T) {
	t.Parallel()

	buf := audiotest.OggPage(audiotest.OggPageParams{
		HeaderType: audiotest.OggBOS | audiotest.OggEOS,
		Granule:    42,
		Serial:     9,
		Packets:    [][]byte{[]byte("one"), []byte("two"), []byte("three")},
	})

	packets := readAll(t, buf)
	if len(packets) != 3 {
		t.Fatalf("got %d packets, want 3", len(packets))
	}

	for i, want := range []string{"one", "two", "three"} {
		p := packets[i]
		if string(p.Data) != want {
			t.Errorf("packet %d = %q, want %q", i, p.Data, want)
		}

		if p.Serial != 9 || p.Granule != 42 {
			t.Errorf("packet %d serial/granule = %d/%d, want 9/42", i, p.Serial, p.Granule)
		}

		if p.First != (i == 0) {
			t.Errorf("packet %d First = %v", i, p.First)
		}

		if p.Last != (i == 2) {
			t.Errorf("packet %d Last = %v", i, p.Last)
		}
	}
}

func TestPacketReader_SpansPages(t *testing.T) {
	t.Parallel()

	long := bytes.Repeat([]byte{0xAB}, 600)

	buf := concat(
		audiotest.OggPage(audiotest.OggPageParams{
			HeaderType: audiotest.OggBOS, Granule: -1, Serial: 1, Sequence: 0,
			Packets: [][]byte{long[:510]}, OpenTail: true,
		}),
		audiotest.OggPage(audiotest.OggPageParams{
			HeaderType: audiotest.OggContinued, Granule: 77, Serial: 1, Sequence: 1,
			Packets: [][]byte{long[510:], []byte("next")},
		}),
	)

	packets := readAll(t, buf)
	if len(packets) != 2 {
		t.Fatalf("got %d packets, want 2", len(packets))
	}

	if !bytes.Equal(packets[0].Data, long) {
		t.Errorf("packet 0 has %d bytes, want the 600 byte packet", len(packets[0].Data))
	}

	if packets[0].Granule != 77 {
		t.Errorf("packet 0 Granule = %d, want 77 (page where it ends)", packets[0].Granule)
	}

	if string(packets[1].Data) != "next" {
		t.Errorf("packet 1 = %q, want %q", packets[1].Data, "next")
	}
}

func TestPacketReader_MultipleOf255(t *testing.T) {
	t.Parallel()

	// A 255 byte packet needs a trailing zero lacing value.
	exact := bytes.Repeat([]byte{1}, 255)
	buf := audiotest.OggPage(audiotest.OggPageParams{Serial: 1, Packets: [][]byte{exact, {2}}})

	packets := readAll(t, buf)
	if len(packets) != 2 || len(packets[0].Data) != 255 || !bytes.Equal(packets[1].Data, []byte{2}) {
		t.Fatalf("got %d packets, want a 255 byte packet then [2]", len(packets))
	}
}

func TestPacketReader_EmptyPacket(t *testing.T) {
	t.Parallel()

	buf := audiotest.OggPage(audiotest.OggPageParams{Serial: 1, Packets: [][]byte{{}, {7}}})

	packets := readAll(t, buf)
	if len(packets) != 2 || len(packets[0].Data) != 0 || packets[1].Data[0] != 7 {
		t.Fatalf("got %+v, want an empty packet then [7]", packets)
	}
}

func TestPacketReader_OrphanContinuation(t *testing.T) {
	t.Parallel()

	// The page claims to continue a packet that was never started.
	buf := audiotest.OggRawPage(audiotest.OggContinued, 5, 1, 0, []byte{255, 10, 3}, concat(
		bytes.Repeat([]byte{0}, 265), []byte("abc"),
	))

	packets := readAll(t, buf)
	if len(packets) != 1 || string(packets[0].Data) != "abc" {
		t.Fatalf("got %d packets, want only %q", len(packets), "abc")
	}

	if !packets[0].First {
		t.Error("first complete packet should be flagged First")
	}
}

func TestPacketReader_MissingContinuation(t *testing.T) {
	t.Parallel()

	// Page 0 leaves a packet open, page 1 is not flagged continued.
	buf := concat(
		audiotest.OggPage(audiotest.OggPageParams{
			Serial: 1, Sequence: 0, Granule: -1,
			Packets: [][]byte{bytes.Repeat([]byte{9}, 255)}, OpenTail: true,
		}),
		audiotest.OggPage(audiotest.OggPageParams{
			Serial: 1, Sequence: 1, Granule: 3,
			Packets: [][]byte{[]byte("fresh")},
		}),
	)

	packets := readAll(t, buf)
	if len(packets) != 1 || string(packets[0].Data) != "fresh" {
		t.Fatalf("got %d packets, want only %q", len(packets), "fresh")
	}
}

func TestPacketReader_Multiplexed(t *testing.T) {
	t.Parallel()

	buf := concat(
		audiotest.OggPage(audiotest.OggPageParams{HeaderType: audiotest.OggBOS, Serial: 1, Packets: [][]byte{[]byte("a0")}}),
		audiotest.OggPage(audiotest.OggPageParams{HeaderType: audiotest.OggBOS, Serial: 2, Packets: [][]byte{[]byte("b0")}}),
		audiotest.OggPage(audiotest.OggPageParams{Serial: 1, Sequence: 1, Packets: [][]byte{[]byte("a1")}}),
		audiotest.OggPage(audiotest.OggPageParams{Serial: 2, Sequence: 1, Packets: [][]byte{[]byte("b1")}}),
	)

	packets := readAll(t, buf)

	want := []struct {
		serial uint32
		data   string
		first  bool
	}{
		{1, "a0", true}, {2, "b0", true}, {1, "a1", false}, {2, "b1", false},
	}

	if len(packets) != len(want) {
		t.Fatalf("got %d packets, want %d", len(packets), len(want))
	}

	for i, w := range want {
		p := packets[i]
		if p.Serial != w.serial || string(p.Data) != w.data || p.First != w.first {
			t.Errorf("packet %d = {%d %q first=%v}, want {%d %q first=%v}", i, p.Serial, p.Data, p.First, w.serial, w.data, w.first)
		}
	}
}

func TestPacketReader_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	buf := concat(
		audiotest.OggPage(audiotest.OggPageParams{Serial: 1, Granule: -1, Packets: [][]byte{bytes.Repeat([]byte{1}, 255)}, OpenTail: true}),
		audiotest.OggPage(audiotest.OggPageParams{HeaderType: audiotest.OggContinued, Serial: 1, Sequence: 1, Packets: [][]byte{{2, 3}, {4}}}),
	)
	orig := bytes.Clone(buf)

	for _, p := range readAll(t, buf) {
		_ = append(p.Data, 0xEE)
	}

	if !bytes.Equal(buf, orig) {
		t.Error("packet reassembly modified the source buffer")
	}
}

func TestPacketReader_PageError(t *testing.T) {
	t.Parallel()

	good := audiotest.OggPage(audiotest.OggPageParams{Serial: 1, Packets: [][]byte{{1}}})
	buf := concat(good, good[:10])

	r := NewPacketReader(buf)
	if _, err := r.Next(); err != nil {
		t.Fatalf("first Next() error = %v", err)
	}

	if _, err := r.Next(); !errors.Is(err, ErrTruncated) {
		t.Errorf("Next() on cut page error = %v, want ErrTruncated", err)
	}
}
