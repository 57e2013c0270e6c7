// SPDX-License-Identifier: EPL-2.0

// Package ogg walks Ogg pages and reassembles packets from an in-memory
// buffer. It knows nothing about the codecs carried inside.
package ogg
