package motion

import (
	"encoding/json"
	"net"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// UDPSource receives gravity samples as JSON datagrams from a phone sensor
// streaming app, one object per datagram: {"gx":..,"gy":..,"gz":..}.
// Malformed datagrams are counted and skipped; the stream is best-effort by
// nature and a bad packet must never kill the feed. A socket read failure
// is fatal and reported through fail.
type UDPSource struct {
	addr    string
	conn    *net.UDPConn
	running atomic.Bool

	dropped int
}

// NewUDPSource creates a source listening on the given UDP address,
// e.g. ":9870".
func NewUDPSource(addr string) *UDPSource {
	return &UDPSource{addr: addr}
}

// Start binds the socket and begins reading datagrams in a goroutine.
func (s *UDPSource) Start(emit func(Sample), fail func(error)) error {
	udpAddr, err := net.ResolveUDPAddr("udp", s.addr)
	if err != nil {
		return errors.Wrapf(err, "resolve motion listen address %q", s.addr)
	}

	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return errors.Wrapf(err, "listen for motion samples on %q", s.addr)
	}
	s.conn = conn
	s.running.Store(true)

	logrus.WithField("addr", conn.LocalAddr().String()).Info("motion: listening for gravity samples")
	go s.loop(emit, fail)
	return nil
}

// Addr returns the bound listen address, resolved. Only valid after a
// successful Start.
func (s *UDPSource) Addr() string {
	if s.conn == nil {
		return s.addr
	}
	return s.conn.LocalAddr().String()
}

func (s *UDPSource) loop(emit func(Sample), fail func(error)) {
	buf := make([]byte, 512)
	for {
		n, _, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			if !s.running.Load() {
				return
			}
			logrus.WithError(err).Warn("motion: socket read failed")
			if fail != nil {
				fail(errors.Wrap(err, "read motion datagram"))
			}
			return
		}

		var sample Sample
		if err := json.Unmarshal(buf[:n], &sample); err != nil {
			s.dropped++
			if s.dropped%100 == 1 {
				logrus.WithError(err).WithField("dropped", s.dropped).
					Warn("motion: skipping malformed datagrams")
			}
			continue
		}

		if s.running.Load() {
			emit(sample)
		}
	}
}

// Stop closes the socket and halts delivery.
func (s *UDPSource) Stop() {
	s.running.Store(false)
	if s.conn != nil {
		s.conn.Close()
	}
}
