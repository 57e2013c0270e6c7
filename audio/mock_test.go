// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var errMockNotRecognized = errors.New("mock: not recognized")

// mockProber is a test helper that records how often it ran and returns a
// canned result.
type mockProber struct {
	format Format
	meta   Metadata
	err    error
	panics bool
	calls  int
}

func newMatchingProber(format Format, sampleRate, sampleLength uint32) *mockProber {
	return &mockProber{
		format: format,
		meta:   Metadata{SampleRate: sampleRate, SampleLength: sampleLength},
	}
}

func newFailingProber(format Format) *mockProber {
	return &mockProber{format: format, err: errMockNotRecognized}
}

func (m *mockProber) Format() Format { return m.format }

func (m *mockProber) Probe(buf []byte) (Metadata, error) {
	m.calls++

	if m.panics {
		panic("mock: hostile input")
	}

	if m.err != nil {
		return Metadata{}, m.err
	}

	return m.meta, nil
}
