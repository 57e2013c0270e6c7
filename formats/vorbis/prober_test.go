// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/internal/audiotest"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	values     int
	offset     int
	readErr    error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.readErr != nil && m.offset > 0 {
		return 0, m.readErr
	}

	n := min(len(buf), m.values-m.offset)
	m.offset += n

	if m.offset >= m.values {
		return n, io.EOF
	}

	return n, nil
}

func mockReader(m *mockOggVorbisReader, err error) func(io.Reader) (vorbisReader, error) {
	return func(io.Reader) (vorbisReader, error) {
		if err != nil {
			return nil, err
		}
		return m, nil
	}
}

// threePackets is a stream of long, long and short packets with block sizes
// 256/2048: 0 + (512+512) + (512+64) = 1600 samples.
func threePackets(finalGranule int64) []byte {
	return audiotest.OggVorbis(audiotest.VorbisParams{
		SampleRate:   44100,
		Channels:     2,
		BlockSizes:   [2]uint8{8, 11},
		ModeFlags:    []bool{false, true},
		Packets:      []int{1, 1, 0},
		FinalGranule: finalGranule,
		Serial:       0x1234,
	})
}

func TestProber_Format(t *testing.T) {
	t.Parallel()

	if got := (Prober{}).Format(); got != audio.Vorbis {
		t.Errorf("Format() = %v, want %v", got, audio.Vorbis)
	}
}

func TestProber_StrategiesAgree(t *testing.T) {
	t.Parallel()

	buf := threePackets(1600)
	want := audio.Metadata{SampleRate: 44100, SampleLength: 1600}

	for _, s := range []Strategy{Granule, Summation} {
		t.Run(s.String(), func(t *testing.T) {
			t.Parallel()

			got, err := Prober{Strategy: s}.Probe(buf)
			if err != nil {
				t.Fatalf("Probe() error = %v, want nil", err)
			}

			if got != want {
				t.Errorf("Probe() = %+v, want %+v", got, want)
			}
		})
	}
}

func lastGranuleFunc(g int64, err error) func(io.ReadSeeker) (int64, error) {
	return func(io.ReadSeeker) (int64, error) {
		return g, err
	}
}

func TestProber_Granule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		granule int64
		want    uint32
	}{
		{name: "stamped", granule: 88200, want: 88200},
		{name: "unset on last page", granule: -1, want: 0},
		{name: "zero", granule: 0, want: 0},
		{name: "beyond uint32", granule: 1 << 40, want: 1<<32 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := Prober{lastGranule: lastGranuleFunc(tt.granule, nil)}

			got, err := p.Probe(threePackets(1600))
			if err != nil {
				t.Fatalf("Probe() error = %v, want nil", err)
			}

			if got.SampleLength != tt.want || got.SampleRate != 44100 {
				t.Errorf("Probe() = %+v, want 44100 Hz / %d frames", got, tt.want)
			}
		})
	}
}

func TestProber_Granule_GetLength(t *testing.T) {
	t.Parallel()

	for _, granule := range []int64{1600, 88200} {
		got, err := Prober{}.Probe(threePackets(granule))
		if err != nil {
			t.Fatalf("Probe() error = %v, want nil", err)
		}

		want := audio.Metadata{SampleRate: 44100, SampleLength: uint32(granule)}
		if got != want {
			t.Errorf("Probe() = %+v, want %+v", got, want)
		}
	}
}

func TestProber_Granule_Unreadable(t *testing.T) {
	t.Parallel()

	readErr := errors.New("no last page")
	p := Prober{lastGranule: lastGranuleFunc(0, readErr)}

	got, err := p.Probe(threePackets(1600))
	if !errors.Is(err, ErrNoGranule) || !errors.Is(err, readErr) {
		t.Errorf("Probe() error = %v, want ErrNoGranule wrapping %v", err, readErr)
	}

	if got != (audio.Metadata{}) {
		t.Errorf("Probe() = %+v, want zero Metadata on error", got)
	}
}

func TestProber_Granule_ReadsWholeBuffer(t *testing.T) {
	t.Parallel()

	buf := threePackets(1600)

	var seen []byte
	p := Prober{lastGranule: func(r io.ReadSeeker) (int64, error) {
		var err error
		seen, err = io.ReadAll(r)
		return 1600, err
	}}

	if _, err := p.Probe(buf); err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	if !bytes.Equal(seen, buf) {
		t.Error("granule reader did not receive the full buffer")
	}
}

func TestProber_Summation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modes   []bool
		packets []int
		want    uint32
	}{
		{name: "no audio", modes: []bool{false}, packets: nil, want: 0},
		{name: "single packet", modes: []bool{false}, packets: []int{0}, want: 0},
		{name: "all short", modes: []bool{false}, packets: []int{0, 0, 0, 0}, want: 3 * 128},
		{name: "all long", modes: []bool{false, true}, packets: []int{1, 1, 1}, want: 2 * 1024},
		{name: "short long short", modes: []bool{false, true}, packets: []int{0, 1, 0}, want: 576 + 576},
		{name: "four modes", modes: []bool{false, false, true, true}, packets: []int{3, 2, 1, 0}, want: 1024 + 576 + 128},
		{name: "mode out of range skipped", modes: []bool{false, true, true}, packets: []int{1, 3, 1}, want: 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			buf := audiotest.OggVorbis(audiotest.VorbisParams{
				SampleRate: 22050, Channels: 1, BlockSizes: [2]uint8{8, 11},
				ModeFlags: tt.modes, Packets: tt.packets, FinalGranule: 999,
			})

			got, err := Prober{Strategy: Summation}.Probe(buf)
			if err != nil {
				t.Fatalf("Probe() error = %v, want nil", err)
			}

			if got.SampleLength != tt.want || got.SampleRate != 22050 {
				t.Errorf("Probe() = %+v, want 22050 Hz / %d frames", got, tt.want)
			}
		})
	}
}

func TestProber_Summation_TruncatedTail(t *testing.T) {
	t.Parallel()

	// Losing the last page drops its packet; what came before still counts.
	full := threePackets(1600)
	buf := full[:len(full)-3]

	summed, err := Prober{Strategy: Summation}.Probe(buf)
	if err != nil {
		t.Fatalf("Summation Probe() error = %v", err)
	}

	if summed.SampleLength != 1024 {
		t.Errorf("Summation SampleLength = %d, want 1024", summed.SampleLength)
	}
}

func TestProber_Summation_Multiplexed(t *testing.T) {
	t.Parallel()

	other := audiotest.OggPage(audiotest.OggPageParams{
		HeaderType: audiotest.OggBOS, Serial: 7,
		Packets: [][]byte{[]byte("OpusHead\x01\x02\x38\x01\x80\xbb\x00\x00\x00\x00\x00")},
	})
	buf := append(other, threePackets(1600)...)

	got, err := Prober{Strategy: Summation}.Probe(buf)
	if err != nil {
		t.Fatalf("Probe() error = %v, want nil", err)
	}

	want := audio.Metadata{SampleRate: 44100, SampleLength: 1600}
	if got != want {
		t.Errorf("Probe() = %+v, want %+v", got, want)
	}
}

func TestProber_Errors(t *testing.T) {
	t.Parallel()

	valid := threePackets(1600)

	opus := audiotest.OggPage(audiotest.OggPageParams{
		HeaderType: audiotest.OggBOS, Packets: [][]byte{[]byte("OpusHead")},
	})
	opus = append(opus, audiotest.OggPage(audiotest.OggPageParams{Sequence: 1, Packets: [][]byte{[]byte("OpusTags")}})...)

	tests := []struct {
		name     string
		buf      []byte
		strategy Strategy
		wantErr  error
	}{
		{name: "empty", buf: nil, wantErr: ErrNotOgg},
		{name: "wav", buf: audiotest.WAV(audiotest.WAVParams{SampleRate: 8000, Channels: 1, BitDepth: 16}), wantErr: ErrNotOgg},
		{name: "ogg prefix only", buf: []byte("OggS"), wantErr: ErrNotOgg},
		{name: "first page cut", buf: valid[:40], wantErr: ErrNotOgg},
		{name: "opus", buf: opus, wantErr: ErrNotVorbis},
		{name: "only headers page 0", buf: valid[:bytes.Index(valid[4:], []byte("OggS"))+4], strategy: Summation, wantErr: nil},
		{name: "unknown strategy", buf: valid, strategy: Strategy(42), wantErr: ErrUnknownStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Prober{Strategy: tt.strategy}.Probe(tt.buf)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Probe() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProber_Summation_BadSetup(t *testing.T) {
	t.Parallel()

	params := audiotest.VorbisParams{SampleRate: 8000, Channels: 1, BlockSizes: [2]uint8{8, 8}, ModeFlags: []bool{false}}
	ident := audiotest.VorbisIdentHeader(params.SampleRate, params.Channels, params.BlockSizes)
	comment := audiotest.VorbisCommentHeader(30)
	setup := append([]byte("\x05vorbis"), bytes.Repeat([]byte{0xFF}, 24)...)

	buf := append(
		audiotest.OggPage(audiotest.OggPageParams{HeaderType: audiotest.OggBOS, Packets: [][]byte{ident}}),
		audiotest.OggPage(audiotest.OggPageParams{Sequence: 1, Packets: [][]byte{comment, setup}})...,
	)

	if _, err := (Prober{Strategy: Summation}).Probe(buf); !errors.Is(err, ErrBadSetupHeader) {
		t.Errorf("Summation Probe() error = %v, want ErrBadSetupHeader", err)
	}

	// The granule strategy never looks at the setup header.
	granule := Prober{Strategy: Granule, lastGranule: lastGranuleFunc(100, nil)}
	if _, err := granule.Probe(buf); err != nil {
		t.Errorf("Granule Probe() error = %v, want nil", err)
	}
}

func TestProber_Decode(t *testing.T) {
	t.Parallel()

	buf := threePackets(1600)

	mock := &mockOggVorbisReader{sampleRate: 44100, channels: 2, values: 2 * 10000}
	p := Prober{Strategy: Decode, newReader: mockReader(mock, nil)}

	got, err := p.Probe(buf)
	if err != nil {
		t.Fatalf("Probe() error = %v, want nil", err)
	}

	want := audio.Metadata{SampleRate: 44100, SampleLength: 10000}
	if got != want {
		t.Errorf("Probe() = %+v, want %+v", got, want)
	}
}

func TestProber_Decode_Errors(t *testing.T) {
	t.Parallel()

	buf := threePackets(1600)
	errBroken := errors.New("broken stream")

	tests := []struct {
		name    string
		newR    func(io.Reader) (vorbisReader, error)
		wantErr error
	}{
		{
			name:    "reader rejects stream",
			newR:    mockReader(nil, errBroken),
			wantErr: ErrNotVorbis,
		},
		{
			name:    "no channels",
			newR:    mockReader(&mockOggVorbisReader{sampleRate: 8000}, nil),
			wantErr: ErrNotVorbis,
		},
		{
			name:    "read fails mid stream",
			newR:    mockReader(&mockOggVorbisReader{sampleRate: 8000, channels: 1, values: 100000, readErr: errBroken}, nil),
			wantErr: errBroken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Prober{Strategy: Decode, newReader: tt.newR}.Probe(buf)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Probe() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestProber_DoesNotModifyInput(t *testing.T) {
	t.Parallel()

	buf := threePackets(1600)
	orig := bytes.Clone(buf)

	for _, s := range []Strategy{Granule, Summation} {
		if _, err := (Prober{Strategy: s}).Probe(buf); err != nil {
			t.Fatalf("%s: Probe() error = %v", s, err)
		}
	}

	if !bytes.Equal(buf, orig) {
		t.Error("Probe() modified its input")
	}
}

func BenchmarkProber_Probe(b *testing.B) {
	packets := make([]int, 2000)
	for i := range packets {
		packets[i] = i % 2
	}

	buf := audiotest.OggVorbis(audiotest.VorbisParams{
		SampleRate: 44100, Channels: 2, BlockSizes: [2]uint8{8, 11},
		ModeFlags: []bool{false, true}, Packets: packets, FinalGranule: 1 << 20,
	})

	for _, s := range []Strategy{Granule, Summation} {
		b.Run(s.String(), func(b *testing.B) {
			p := Prober{Strategy: s}
			for b.Loop() {
				_, _ = p.Probe(buf)
			}
		})
	}
}
