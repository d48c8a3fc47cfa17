//go:build cuda

package cuda

/*
#cgo LDFLAGS: -lcudart -lcuda

// Forward declarations so the CUDA headers are not needed at compile time.
typedef int cudaError_t;
typedef int CUresult;
typedef void* cudaStream_t;

extern const char* cudaGetErrorString(cudaError_t err);
extern cudaError_t cudaGetDeviceCount(int* count);
extern cudaError_t cudaDeviceSynchronize(void);
extern cudaError_t cudaMalloc(void** ptr, unsigned long long size);
extern cudaError_t cudaFree(void* ptr);
extern cudaError_t cudaMemcpy(void* dst, const void* src, unsigned long long size, int kind);
extern cudaError_t cudaStreamCreate(cudaStream_t* stream);
extern cudaError_t cudaStreamDestroy(cudaStream_t stream);
extern cudaError_t cudaStreamSynchronize(cudaStream_t stream);
extern CUresult cuGetErrorString(CUresult err, const char** str);

#define OMM_CUDA_MEMCPY_HOST_TO_DEVICE 1
#define OMM_CUDA_MEMCPY_DEVICE_TO_HOST 2

// cuGetErrorString leaves str untouched for unknown codes.
static const char* ommDriverErrorString(int code) {
	const char* str = 0;
	if (cuGetErrorString((CUresult)code, &str) != 0) {
		return 0;
	}
	return str;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/samcharles93/ommbake/internal/ommerr"
)

type nativeRuntime struct{}

func (nativeRuntime) ErrorString(st ommerr.Status) (string, bool) {
	var s *C.char
	switch st.Family {
	case ommerr.FamilyRuntime:
		s = C.cudaGetErrorString(C.cudaError_t(st.Code))
	case ommerr.FamilyDriver:
		s = C.ommDriverErrorString(C.int(st.Code))
	}
	if s == nil {
		return "", false
	}
	return C.GoString(s), true
}

func (nativeRuntime) DeviceSynchronize() ommerr.Status {
	return rt(C.cudaDeviceSynchronize())
}

func rt(code C.cudaError_t) ommerr.Status {
	return ommerr.RuntimeStatus(int(code))
}

// Runtime decodes statuses through libcudart and libcuda.
func Runtime() ommerr.Runtime {
	return nativeRuntime{}
}

func Open(opts ...ommerr.Option) (*Device, error) {
	d := &Device{check: ommerr.NewChecker(nativeRuntime{}, opts...)}
	count, err := d.Count()
	if err != nil {
		return nil, fmt.Errorf("cuda device query failed: %w", err)
	}
	if count < 1 {
		return nil, ommerr.New(ommerr.ErrorMissingSupport, "no cuda devices detected")
	}
	return d, nil
}

func (d *Device) Count() (int, error) {
	var count C.int
	if err := d.check.Call(rt(C.cudaGetDeviceCount(&count)), "cudaGetDeviceCount(&count)"); err != nil {
		return 0, err
	}
	return int(count), nil
}

func (d *Device) Synchronize() error {
	return d.check.Call(rt(C.cudaDeviceSynchronize()), "cudaDeviceSynchronize()")
}

func (d *Device) Alloc(bytes int64) (*DeviceBuffer, error) {
	if err := ommerr.AssertMsg(bytes > 0, "device alloc size must be > 0", "bytes > 0"); err != nil {
		return nil, err
	}
	var ptr unsafe.Pointer
	if err := d.check.Call(rt(C.cudaMalloc(&ptr, C.ulonglong(bytes))), "cudaMalloc(&ptr, bytes)"); err != nil {
		return nil, err
	}
	return &DeviceBuffer{dev: d, ptr: ptr, size: bytes}, nil
}

// Release frees the buffer. A failure here leaves device memory in an
// unknown state, so it terminates the process.
func (b *DeviceBuffer) Release() {
	if b == nil || b.ptr == nil {
		return
	}
	b.dev.check.CallNoThrow(rt(C.cudaFree(b.ptr)), "cudaFree(b.ptr)")
	b.ptr = nil
}

func (d *Device) MemcpyH2D(dst *DeviceBuffer, src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if err := ommerr.AssertMsg(int64(len(src)) <= dst.Size(), "host source larger than device buffer", "len(src) <= dst.Size()"); err != nil {
		return err
	}
	return d.check.Call(
		rt(C.cudaMemcpy(dst.ptr, unsafe.Pointer(&src[0]), C.ulonglong(len(src)), C.OMM_CUDA_MEMCPY_HOST_TO_DEVICE)),
		"cudaMemcpy(dst.ptr, src, len(src), cudaMemcpyHostToDevice)",
	)
}

func (d *Device) MemcpyD2H(dst []byte, src *DeviceBuffer) error {
	if len(dst) == 0 {
		return nil
	}
	if err := ommerr.AssertMsg(int64(len(dst)) <= src.Size(), "host destination larger than device buffer", "len(dst) <= src.Size()"); err != nil {
		return err
	}
	return d.check.Call(
		rt(C.cudaMemcpy(unsafe.Pointer(&dst[0]), src.ptr, C.ulonglong(len(dst)), C.OMM_CUDA_MEMCPY_DEVICE_TO_HOST)),
		"cudaMemcpy(dst, src.ptr, len(dst), cudaMemcpyDeviceToHost)",
	)
}

func (d *Device) NewStream() (*Stream, error) {
	var stream C.cudaStream_t
	if err := d.check.Call(rt(C.cudaStreamCreate(&stream)), "cudaStreamCreate(&stream)"); err != nil {
		return nil, err
	}
	return &Stream{dev: d, ptr: unsafe.Pointer(stream)}, nil
}

func (s *Stream) Synchronize() error {
	return s.dev.check.Call(rt(C.cudaStreamSynchronize(C.cudaStream_t(s.ptr))), "cudaStreamSynchronize(s.ptr)")
}

func (s *Stream) Release() {
	if s == nil || s.ptr == nil {
		return
	}
	s.dev.check.CallNoThrow(rt(C.cudaStreamDestroy(C.cudaStream_t(s.ptr))), "cudaStreamDestroy(s.ptr)")
	s.ptr = nil
}
