// SPDX-License-Identifier: Unlicense OR MIT

package gl

const (
	ALL_BARRIER_BITS           = 0xffffffff
	ALREADY_SIGNALED           = 0x911A
	COMPILE_STATUS             = 0x8b81
	COMPUTE_SHADER             = 0x91B9
	CONDITION_SATISFIED        = 0x911C
	EXTENSIONS                 = 0x1f03
	FALSE                      = 0
	INFO_LOG_LENGTH            = 0x8B84
	LINK_STATUS                = 0x8b82
	MAJOR_VERSION              = 0x821B
	MAP_READ_BIT               = 0x0001
	MINOR_VERSION              = 0x821C
	NO_ERROR                   = 0x0
	RENDERER                   = 0x1F01
	SHADER_STORAGE_BUFFER      = 0x90D2
	STREAM_DRAW                = 0x88E0
	STREAM_READ                = 0x88E1
	SYNC_FLUSH_COMMANDS_BIT    = 0x1
	SYNC_GPU_COMMANDS_COMPLETE = 0x9117
	TIMEOUT_EXPIRED            = 0x911B
	TRUE                       = 1
	VERSION                    = 0x1f02
	WAIT_FAILED                = 0x911D
)
