package hidreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeShortSizeCodes(t *testing.T) {
	assert.Equal(t, []byte{0x80}, encodeShort(ItemTypeMain, 0x8, nil))
	assert.Equal(t, []byte{0x81, 0x05}, encodeShort(ItemTypeMain, 0x8, []byte{0x05}))
	assert.Equal(t, []byte{0x82, 0x01, 0x02}, encodeShort(ItemTypeMain, 0x8, []byte{0x01, 0x02}))
}

func TestEncodeShortPads3ByteDataTo4(t *testing.T) {
	got := encodeShort(ItemTypeMain, 0x8, []byte{0x01, 0x02, 0x03})
	assert.Equal(t, []byte{0x83, 0x01, 0x02, 0x03, 0x00}, got)
}

func TestUintBytesPicksSmallestWidth(t *testing.T) {
	assert.Equal(t, []byte{0x05}, uintBytes(5))
	assert.Equal(t, []byte{0xFF}, uintBytes(0xFF))
	assert.Equal(t, []byte{0x00, 0x01}, uintBytes(0x100))
	assert.Equal(t, []byte{0xFF, 0xFF}, uintBytes(0xFFFF))
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x00}, uintBytes(0x10000))
}

func TestIntBytesPicksSmallestSignedWidth(t *testing.T) {
	assert.Equal(t, []byte{0x00}, intBytes(0))
	assert.Equal(t, []byte{0x7F}, intBytes(127))
	assert.Equal(t, []byte{0x80}, intBytes(-128))
	assert.Equal(t, []byte{0x80, 0x00}, intBytes(128))
	assert.Equal(t, []byte{0x00, 0x80}, intBytes(-32768))
	assert.Equal(t, []byte{0xFF, 0x7F, 0xFF, 0xFF}, intBytes(-32769))
}

func TestUsagePageEncode(t *testing.T) {
	assert.Equal(t, []byte{0x05, 0x01}, UsagePage{Page: UsagePageGenericDesktop}.Encode())
	assert.Equal(t, []byte{0x06, 0x00, 0xFF}, UsagePage{Page: UsagePageVendorDefined}.Encode())
}

func TestLogicalMinimumMaximumEncode(t *testing.T) {
	assert.Equal(t, []byte{0x15, 0x00}, LogicalMinimum{Min: 0}.Encode())
	assert.Equal(t, []byte{0x25, 0x7F}, LogicalMaximum{Max: 127}.Encode())
	assert.Equal(t, []byte{0x26, 0xFF, 0x00}, LogicalMaximum{Max: 255}.Encode(), "255 needs a signed 2-byte encoding")
	assert.Equal(t, []byte{0x15, 0x81}, LogicalMinimum{Min: -127}.Encode())
}

func TestReportSizeCountIDEncode(t *testing.T) {
	assert.Equal(t, []byte{0x75, 0x08}, ReportSize{Bits: 8}.Encode())
	assert.Equal(t, []byte{0x95, 0x04}, ReportCount{Count: 4}.Encode())
	assert.Equal(t, []byte{0x85, 0x01}, ReportID{ID: 1}.Encode())
}

func TestUsageMinMaxEncode(t *testing.T) {
	assert.Equal(t, []byte{0x19, 0x00}, UsageMinimum{Min: 0}.Encode())
	assert.Equal(t, []byte{0x29, 0xFF}, UsageMaximum{Max: 255}.Encode())
}

func TestInputOutputFeatureEncode(t *testing.T) {
	assert.Equal(t, []byte{0x81, MainVar | MainAbs}, Input{Flags: MainVar | MainAbs}.Encode())
	assert.Equal(t, []byte{0x91, MainVar}, Output{Flags: MainVar}.Encode())
	assert.Equal(t, []byte{0xB1, MainConstant}, Feature{Flags: MainConstant}.Encode())
}

func TestCollectionWrapsItemsAndEmitsEndCollection(t *testing.T) {
	c := Collection{
		Kind: CollectionApplication,
		Items: []Item{
			UsagePage{Page: UsagePageGenericDesktop},
			Usage{Usage: UsageMouse},
		},
	}
	got := c.Encode()

	want := append([]byte{0xA1, CollectionApplication},
		append(UsagePage{Page: UsagePageGenericDesktop}.Encode(),
			append(Usage{Usage: UsageMouse}.Encode(), 0xC0)...)...)
	assert.Equal(t, want, got)
}

func TestReportBytesConcatenatesTopLevelItems(t *testing.T) {
	r := Report{Items: []Item{
		UsagePage{Page: UsagePageGenericDesktop},
		Usage{Usage: UsageJoystick},
	}}
	want := append(UsagePage{Page: UsagePageGenericDesktop}.Encode(), Usage{Usage: UsageJoystick}.Encode()...)
	assert.Equal(t, want, r.Bytes())
}

func TestAnyItemEscapeHatch(t *testing.T) {
	got := AnyItem{Type: ItemTypeGlobal, Tag: 0xA, Data: Data{0x01}}.Encode()
	assert.Equal(t, []byte{0xA5, 0x01}, got)
}
