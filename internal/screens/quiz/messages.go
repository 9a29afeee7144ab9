package quiz

import "time"

// timerTickMsg is sent every second to drive the exam countdown.
type timerTickMsg time.Time
