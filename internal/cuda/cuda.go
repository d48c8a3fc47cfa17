// Package cuda binds the CUDA runtime used by the baking library. Every call
// goes through an ommerr.Checker; release paths use the no-throw form.
package cuda

import (
	"unsafe"

	"github.com/samcharles93/ommbake/internal/ommerr"
)

// ErrUnavailable is returned by Open when the build has no CUDA support or no
// device is present.
var ErrUnavailable = ommerr.New(ommerr.ErrorMissingSupport, "cuda support is not available in this build")

// Device issues checked runtime calls against the current CUDA device.
type Device struct {
	check *ommerr.Checker
}

func (d *Device) Checker() *ommerr.Checker {
	return d.check
}

type DeviceBuffer struct {
	dev  *Device
	ptr  unsafe.Pointer
	size int64
}

func (b *DeviceBuffer) Size() int64 {
	if b == nil {
		return 0
	}
	return b.size
}

type Stream struct {
	dev *Device
	ptr unsafe.Pointer
}
