package dualsense

import "time"

// sensorTimestamp returns the wall-clock time in 0.33µs ticks, the unit
// the input report's sensor_timestamp field carries.
func sensorTimestamp() uint32 {
	return uint32(time.Now().UnixNano() / 333)
}
