// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"

	"github.com/ik5/audmeta/audio"
)

// ErrMockNotRecognized is returned by a MockProber built with NewRejectingProber.
var ErrMockNotRecognized = errors.New("audiotest: not recognized")

// MockProber is a test helper implementing audio.Prober with a canned result.
// It counts its calls so tests can assert dispatch order.
type MockProber struct {
	format audio.Format
	meta   audio.Metadata
	err    error
	calls  *[]audio.Format
}

// NewMockProber creates a prober for format that always succeeds with meta.
// When journal is not nil each call appends format to it.
func NewMockProber(format audio.Format, meta audio.Metadata, journal *[]audio.Format) *MockProber {
	return &MockProber{format: format, meta: meta, calls: journal}
}

// NewRejectingProber creates a prober for format that always fails with err,
// or ErrMockNotRecognized when err is nil.
func NewRejectingProber(format audio.Format, err error, journal *[]audio.Format) *MockProber {
	if err == nil {
		err = ErrMockNotRecognized
	}
	return &MockProber{format: format, err: err, calls: journal}
}

func (m *MockProber) Format() audio.Format { return m.format }

func (m *MockProber) Probe(buf []byte) (audio.Metadata, error) {
	if m.calls != nil {
		*m.calls = append(*m.calls, m.format)
	}

	if m.err != nil {
		return audio.Metadata{}, m.err
	}

	return m.meta, nil
}
