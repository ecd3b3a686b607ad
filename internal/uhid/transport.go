//go:build linux

// Package uhid wraps /dev/uhid: creating a kernel HID device from a fixed
// report descriptor, feeding it input reports, and answering the kernel's
// GET_REPORT/SET_REPORT/OUTPUT requests from a background reader task.
package uhid

import (
	"encoding/binary"
	"log/slog"
	"os"
	"sync"

	"github.com/nullsink/vhid/device"
	vhidlog "github.com/nullsink/vhid/internal/log"
)

const uhidPath = "/dev/uhid"

// rawLogger receives a hex dump of every uhid_event read from or written
// to /dev/uhid when SetRawLogger installs a non-nil one; nil by default.
var rawLogger vhidlog.RawLogger

// SetRawLogger installs the process-wide raw packet logger used by every
// Device. Call once at startup before creating devices.
func SetRawLogger(l vhidlog.RawLogger) { rawLogger = l }

// Event types from the kernel's enum uhid_event_type (uapi/linux/uhid.h).
const (
	evDestroy        = 1
	evStart          = 2
	evStop           = 3
	evOpen           = 4
	evClose          = 5
	evOutput         = 6
	evGetReport      = 9
	evGetReportReply = 10
	evCreate2        = 11
	evInput2         = 12
	evSetReport      = 13
	evSetReportReply = 14
)

const (
	nameSize = 128
	physSize = 64
	uniqSize = 64
	rdSize   = 4096

	create2Size = nameSize + physSize + uniqSize + 2 + 2 + 4 + 4 + 4 + 4 + rdSize // 4372
	eventSize   = 4 + create2Size                                                 // 4376, the largest variant
)

// ReportType mirrors enum uhid_report_type.
type ReportType uint8

const (
	ReportInput   ReportType = 0
	ReportOutput  ReportType = 1
	ReportFeature ReportType = 2
)

// ReportRequestFunc answers a GET_REPORT request for the given report
// number and type, returning the reply payload and an error code (0 on
// success, matching the kernel's uhid_get_report_reply.err convention).
type ReportRequestFunc func(reportNum uint8, rtype ReportType) (data []byte, errCode uint16)

// OutputFunc handles an OUTPUT report (rumble, LED, lightbar) sent by the
// kernel/userspace client that opened the device.
type OutputFunc func(data []byte, rtype ReportType)

// SetReportFunc answers a SET_REPORT request.
type SetReportFunc func(reportNum uint8, rtype ReportType, data []byte) (errCode uint16)

// Device owns one /dev/uhid-created HID device for the lifetime of the
// handle; Close tears the kernel device down.
type Device struct {
	mu   sync.Mutex
	file *os.File

	logger *slog.Logger

	onGetReport ReportRequestFunc
	onOutput    OutputFunc
	onSetReport SetReportFunc
	onStart     func()

	stop chan struct{}
	done chan struct{}
}

// Create opens /dev/uhid and issues UHID_CREATE2 with def's identity and
// report descriptor.
func Create(def device.Definition, logger *slog.Logger) (*Device, error) {
	f, err := os.OpenFile(uhidPath, os.O_RDWR, 0)
	if err != nil {
		return nil, &device.Error{Op: "uhid.Create", Reason: "open " + uhidPath, Err: err}
	}

	if logger == nil {
		logger = slog.Default()
	}

	d := &Device{file: f, logger: logger, stop: make(chan struct{}), done: make(chan struct{})}

	if err := d.writeCreate2(def); err != nil {
		f.Close()
		return nil, err
	}

	go d.readLoop()
	return d, nil
}

// writeLogged writes buf to the uhid fd, feeding a copy to rawLogger
// first when one is installed. Caller holds d.mu where required.
func (d *Device) writeLogged(buf []byte) (int, error) {
	if rawLogger != nil {
		rawLogger.Log(false, buf)
	}
	return d.file.Write(buf)
}

func (d *Device) writeCreate2(def device.Definition) error {
	buf := make([]byte, eventSize)
	binary.LittleEndian.PutUint32(buf[0:4], evCreate2)

	off := 4
	copy(buf[off:off+nameSize], def.Name)
	off += nameSize
	copy(buf[off:off+physSize], def.Phys)
	off += physSize
	copy(buf[off:off+uniqSize], def.Uniq)
	off += uniqSize

	rd := def.ReportDescriptor
	if len(rd) > rdSize {
		return &device.Error{Op: "uhid.Create", Reason: "report descriptor too large"}
	}
	binary.LittleEndian.PutUint16(buf[off:off+2], uint16(len(rd)))
	off += 2
	binary.LittleEndian.PutUint16(buf[off:off+2], def.Bus)
	off += 2
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(def.Vendor))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(def.Product))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], uint32(def.Version))
	off += 4
	binary.LittleEndian.PutUint32(buf[off:off+4], def.Country)
	off += 4
	copy(buf[off:off+len(rd)], rd)

	if _, err := d.writeLogged(buf); err != nil {
		return &device.Error{Op: "uhid.Create", Reason: "UHID_CREATE2 write", Err: err}
	}
	return nil
}

// SetHandlers installs the callbacks invoked from the reader task. Must be
// called before the kernel driver starts issuing requests, i.e.
// immediately after Create.
func (d *Device) SetHandlers(onGetReport ReportRequestFunc, onOutput OutputFunc, onSetReport SetReportFunc) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onGetReport = onGetReport
	d.onOutput = onOutput
	d.onSetReport = onSetReport
}

// SetStartHandler installs a callback invoked on UHID_START, used by
// devices (e.g. DualSense) that must resend their current input report
// to re-sync a newly-attached host.
func (d *Device) SetStartHandler(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onStart = f
}

// Input2 sends an input report via UHID_INPUT2.
func (d *Device) Input2(data []byte) error {
	if len(data) > rdSize {
		return &device.Error{Op: "uhid.Input2", Reason: "report too large"}
	}
	buf := make([]byte, 4+2+rdSize)
	binary.LittleEndian.PutUint32(buf[0:4], evInput2)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(data)))
	copy(buf[6:6+len(data)], data)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.writeLogged(buf[:4+2+len(data)]); err != nil {
		return &device.Error{Op: "uhid.Input2", Reason: "write", Err: err}
	}
	return nil
}

// Close sends UHID_DESTROY and releases the file descriptor, which wakes
// the reader task from its blocking read, then waits for that task to
// exit.
func (d *Device) Close() error {
	close(d.stop)

	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, evDestroy)
	d.mu.Lock()
	_, _ = d.writeLogged(buf)
	err := d.file.Close()
	d.mu.Unlock()

	<-d.done
	return err
}

// readLoop drains UHID_* events from the kernel: START/STOP/OPEN/CLOSE are
// logged, GET_REPORT/OUTPUT/SET_REPORT are dispatched to the installed
// callbacks.
func (d *Device) readLoop() {
	defer close(d.done)

	buf := make([]byte, eventSize)
	for {
		select {
		case <-d.stop:
			return
		default:
		}

		n, err := d.file.Read(buf)
		if err != nil {
			if pe, ok := err.(*os.PathError); ok {
				d.logger.Debug("uhid read error", "error", pe)
			}
			select {
			case <-d.stop:
				return
			default:
				continue
			}
		}
		if n < 4 {
			continue
		}

		if rawLogger != nil {
			rawLogger.Log(true, buf[:n])
		}

		evType := binary.LittleEndian.Uint32(buf[0:4])
		switch evType {
		case evStart:
			d.logger.Debug("uhid: UHID_START")
			d.mu.Lock()
			fn := d.onStart
			d.mu.Unlock()
			if fn != nil {
				fn()
			}
		case evStop:
			d.logger.Debug("uhid: UHID_STOP")
		case evOpen:
			d.logger.Debug("uhid: UHID_OPEN")
		case evClose:
			d.logger.Debug("uhid: UHID_CLOSE")
		case evGetReport:
			d.handleGetReport(buf[4:n])
		case evOutput:
			d.handleOutput(buf[4:n])
		case evSetReport:
			d.handleSetReport(buf[4:n])
		}
	}
}

func (d *Device) handleGetReport(b []byte) {
	if len(b) < 6 {
		return
	}
	id := binary.LittleEndian.Uint32(b[0:4])
	rnum := b[4]
	rtype := ReportType(b[5])

	d.mu.Lock()
	fn := d.onGetReport
	d.mu.Unlock()

	var data []byte
	var errCode uint16 = 1 // EIO-ish default when unhandled
	if fn != nil {
		data, errCode = fn(rnum, rtype)
	}
	d.writeGetReportReply(id, errCode, data)
}

func (d *Device) writeGetReportReply(id uint32, errCode uint16, data []byte) {
	if len(data) > rdSize {
		data = data[:rdSize]
	}
	buf := make([]byte, 4+4+2+2+rdSize)
	binary.LittleEndian.PutUint32(buf[0:4], evGetReportReply)
	binary.LittleEndian.PutUint32(buf[4:8], id)
	binary.LittleEndian.PutUint16(buf[8:10], errCode)
	binary.LittleEndian.PutUint16(buf[10:12], uint16(len(data)))
	copy(buf[12:12+len(data)], data)

	d.mu.Lock()
	_, err := d.writeLogged(buf[:12+len(data)])
	d.mu.Unlock()
	if err != nil {
		d.logger.Warn("uhid GET_REPORT_REPLY write failed", "error", err)
	}
}

func (d *Device) handleOutput(b []byte) {
	if len(b) < rdSize+2+1 {
		return
	}
	size := binary.LittleEndian.Uint16(b[rdSize : rdSize+2])
	rtype := ReportType(b[rdSize+2])
	if int(size) > rdSize {
		size = rdSize
	}

	d.mu.Lock()
	fn := d.onOutput
	d.mu.Unlock()
	if fn != nil {
		data := make([]byte, size)
		copy(data, b[:size])
		fn(data, rtype)
	}
}

func (d *Device) handleSetReport(b []byte) {
	if len(b) < 4+1+1+2 {
		return
	}
	id := binary.LittleEndian.Uint32(b[0:4])
	rnum := b[4]
	rtype := ReportType(b[5])
	size := binary.LittleEndian.Uint16(b[6:8])
	if int(8+size) > len(b) {
		size = uint16(len(b) - 8)
	}
	data := b[8 : 8+size]

	d.mu.Lock()
	fn := d.onSetReport
	d.mu.Unlock()

	var errCode uint16
	if fn != nil {
		errCode = fn(rnum, rtype, data)
	}
	d.writeSetReportReply(id, errCode)
}

func (d *Device) writeSetReportReply(id uint32, errCode uint16) {
	buf := make([]byte, 4+4+2)
	binary.LittleEndian.PutUint32(buf[0:4], evSetReportReply)
	binary.LittleEndian.PutUint32(buf[4:8], id)
	binary.LittleEndian.PutUint16(buf[8:10], errCode)

	d.mu.Lock()
	_, err := d.writeLogged(buf)
	d.mu.Unlock()
	if err != nil {
		d.logger.Warn("uhid SET_REPORT_REPLY write failed", "error", err)
	}
}

// GetNodes always returns nil for UHID devices: the kernel exposes them
// as HID/input subsystem nodes, not a single predictable path, and no
// node paths are looked up for them.
func (d *Device) GetNodes() []string { return nil }
