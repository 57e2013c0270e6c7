// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ik5/audmeta/internal/logging"
	pionlogging "github.com/pion/logging"
)

// Registry holds probers in priority order and dispatches buffers to them.
type Registry struct {
	probers []Prober
	log     pionlogging.LeveledLogger

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		log: logging.NewLogger("audmeta/audio"),
		mtx: &sync.Mutex{},
	}
}

// SetLogger replaces the logger used to trace probe attempts.
func (r *Registry) SetLogger(l pionlogging.LeveledLogger) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.log = l
}

// Register appends p to the end of the priority list. Registering a format
// that is already present replaces that prober in place.
func (r *Registry) Register(p Prober) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for i, existing := range r.probers {
		if existing.Format() == p.Format() {
			r.probers[i] = p
			return
		}
	}

	r.probers = append(r.probers, p)
}

func (r *Registry) Get(format Format) (Prober, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	for _, p := range r.probers {
		if p.Format() == format {
			return p, true
		}
	}

	return nil, false
}

// Formats lists the registered formats in the order they are tried.
func (r *Registry) Formats() []Format {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	formats := make([]Format, len(r.probers))
	for i, p := range r.probers {
		formats[i] = p.Format()
	}

	return formats
}

// Probe runs every registered prober against buf in order and returns the
// first success. It stops early when a prober fails with ErrAbort, and
// returns ErrUnrecognized when no prober succeeds.
func (r *Registry) Probe(buf []byte) (Format, Metadata, error) {
	r.mtx.Lock()
	probers := make([]Prober, len(r.probers))
	copy(probers, r.probers)
	log := r.log
	r.mtx.Unlock()

	for _, p := range probers {
		meta, err := safeProbe(p, buf)
		if err == nil {
			log.Debugf("%s: %s", p.Format(), meta)
			return p.Format(), meta, nil
		}

		if errors.Is(err, ErrAbort) {
			log.Debugf("%s: dispatch aborted: %v", p.Format(), err)
			return p.Format(), Metadata{}, err
		}

		if errors.Is(err, ErrProberPanic) {
			log.Warnf("%s: %v", p.Format(), err)
			continue
		}

		log.Tracef("%s: %v", p.Format(), err)
	}

	return Unknown, Metadata{}, ErrUnrecognized
}

func safeProbe(p Prober, buf []byte) (meta Metadata, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			meta = Metadata{}
			err = fmt.Errorf("%w: %v", ErrProberPanic, rec)
		}
	}()

	return p.Probe(buf)
}
