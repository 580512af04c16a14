package util

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
)

// seq rolls a three-digit suffix so registrations created inside the same
// clock tick still get distinct ids. Starts at a random offset per process.
var seq atomic.Uint32

func init() {
	seq.Store(uint32(rand.Intn(1000)))
}

// NewRegistrationID returns an id like REG_1724244000123042: unix
// milliseconds followed by the rolling suffix. Any run of 1000 ids is
// collision-free even within a single millisecond; ids are not monotonic
// across concurrent requests.
func NewRegistrationID() string {
	return fmt.Sprintf("REG_%d%03d", time.Now().UnixMilli(), seq.Add(1)%1000)
}
