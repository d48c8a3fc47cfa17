//go:build !cuda

package cuda

import "github.com/samcharles93/ommbake/internal/ommerr"

// Runtime decodes statuses from ommerr's built-in tables.
func Runtime() ommerr.Runtime {
	return ommerr.StaticRuntime{}
}

func Open(opts ...ommerr.Option) (*Device, error) {
	return nil, ErrUnavailable
}

func (d *Device) Count() (int, error)                           { return 0, ErrUnavailable }
func (d *Device) Synchronize() error                            { return ErrUnavailable }
func (d *Device) Alloc(bytes int64) (*DeviceBuffer, error)      { return nil, ErrUnavailable }
func (d *Device) MemcpyH2D(dst *DeviceBuffer, src []byte) error { return ErrUnavailable }
func (d *Device) MemcpyD2H(dst []byte, src *DeviceBuffer) error { return ErrUnavailable }
func (d *Device) NewStream() (*Stream, error)                   { return nil, ErrUnavailable }
func (b *DeviceBuffer) Release()                                {}
func (s *Stream) Synchronize() error                            { return ErrUnavailable }
func (s *Stream) Release()                                      {}
