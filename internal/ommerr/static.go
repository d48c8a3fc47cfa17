package ommerr

type statusEntry struct {
	name string
	msg  string
}

// Strings match cudaGetErrorString and cuGetErrorString for CUDA 12.
var runtimeStatuses = map[int]statusEntry{
	0:   {"cudaSuccess", "no error"},
	1:   {"cudaErrorInvalidValue", "invalid argument"},
	2:   {"cudaErrorMemoryAllocation", "out of memory"},
	3:   {"cudaErrorInitializationError", "initialization error"},
	4:   {"cudaErrorCudartUnloading", "driver shutting down"},
	9:   {"cudaErrorInvalidConfiguration", "invalid configuration argument"},
	12:  {"cudaErrorInvalidPitchValue", "invalid pitch argument"},
	13:  {"cudaErrorInvalidSymbol", "invalid device symbol"},
	21:  {"cudaErrorInvalidMemcpyDirection", "invalid copy direction for memcpy"},
	35:  {"cudaErrorInsufficientDriver", "CUDA driver version is insufficient for CUDA runtime version"},
	46:  {"cudaErrorDevicesUnavailable", "CUDA-capable device(s) is/are busy or unavailable"},
	98:  {"cudaErrorInvalidDeviceFunction", "invalid device function"},
	100: {"cudaErrorNoDevice", "no CUDA-capable device is detected"},
	101: {"cudaErrorInvalidDevice", "invalid device ordinal"},
	200: {"cudaErrorInvalidKernelImage", "device kernel image is invalid"},
	201: {"cudaErrorDeviceUninitialized", "invalid device context"},
	209: {"cudaErrorNoKernelImageForDevice", "no kernel image is available for execution on the device"},
	400: {"cudaErrorInvalidResourceHandle", "invalid resource handle"},
	500: {"cudaErrorSymbolNotFound", "named symbol not found"},
	600: {"cudaErrorNotReady", "device not ready"},
	700: {"cudaErrorIllegalAddress", "an illegal memory access was encountered"},
	701: {"cudaErrorLaunchOutOfResources", "too many resources requested for launch"},
	702: {"cudaErrorLaunchTimeout", "the launch timed out and was terminated"},
	710: {"cudaErrorAssert", "device-side assert triggered"},
	716: {"cudaErrorMisalignedAddress", "misaligned address"},
	719: {"cudaErrorLaunchFailure", "unspecified launch failure"},
	999: {"cudaErrorUnknown", "unknown error"},
}

var driverStatuses = map[int]statusEntry{
	0:   {"CUDA_SUCCESS", "no error"},
	1:   {"CUDA_ERROR_INVALID_VALUE", "invalid argument"},
	2:   {"CUDA_ERROR_OUT_OF_MEMORY", "out of memory"},
	3:   {"CUDA_ERROR_NOT_INITIALIZED", "initialization error"},
	4:   {"CUDA_ERROR_DEINITIALIZED", "driver shutting down"},
	100: {"CUDA_ERROR_NO_DEVICE", "no CUDA-capable device is detected"},
	101: {"CUDA_ERROR_INVALID_DEVICE", "invalid device ordinal"},
	200: {"CUDA_ERROR_INVALID_IMAGE", "device kernel image is invalid"},
	201: {"CUDA_ERROR_INVALID_CONTEXT", "invalid device context"},
	209: {"CUDA_ERROR_NO_BINARY_FOR_GPU", "no kernel image is available for execution on the device"},
	301: {"CUDA_ERROR_FILE_NOT_FOUND", "file not found"},
	400: {"CUDA_ERROR_INVALID_HANDLE", "invalid resource handle"},
	500: {"CUDA_ERROR_NOT_FOUND", "named symbol not found"},
	600: {"CUDA_ERROR_NOT_READY", "device not ready"},
	700: {"CUDA_ERROR_ILLEGAL_ADDRESS", "an illegal memory access was encountered"},
	701: {"CUDA_ERROR_LAUNCH_OUT_OF_RESOURCES", "too many resources requested for launch"},
	702: {"CUDA_ERROR_LAUNCH_TIMEOUT", "the launch timed out and was terminated"},
	710: {"CUDA_ERROR_ASSERT", "device-side assert triggered"},
	716: {"CUDA_ERROR_MISALIGNED_ADDRESS", "misaligned address"},
	719: {"CUDA_ERROR_LAUNCH_FAILED", "unspecified launch failure"},
	999: {"CUDA_ERROR_UNKNOWN", "unknown error"},
}

func lookup(st Status) (statusEntry, bool) {
	switch st.Family {
	case FamilyRuntime:
		e, ok := runtimeStatuses[st.Code]
		return e, ok
	case FamilyDriver:
		e, ok := driverStatuses[st.Code]
		return e, ok
	default:
		return statusEntry{}, false
	}
}

// Name returns the symbolic CUDA name for st, such as cudaErrorMemoryAllocation.
func Name(st Status) (string, bool) {
	e, ok := lookup(st)
	return e.name, ok
}

// StaticRuntime decodes statuses from built-in tables. It never touches a
// device, so DeviceSynchronize always succeeds.
type StaticRuntime struct{}

func (StaticRuntime) ErrorString(st Status) (string, bool) {
	e, ok := lookup(st)
	return e.msg, ok
}

func (StaticRuntime) DeviceSynchronize() Status {
	return RuntimeStatus(0)
}
