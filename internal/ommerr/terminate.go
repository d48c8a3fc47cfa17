package ommerr

// abortExitCode matches the shell status of a process killed by SIGABRT.
const abortExitCode = 134
