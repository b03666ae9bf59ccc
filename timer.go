package bollywood

// shutdownTimerID is reserved for a supervisor's own shutdown-deadline
// timer. Request timeout timers use the request's own id instead, which is
// always >= 1 and so never collides with it.
const shutdownTimerID uint64 = 0
