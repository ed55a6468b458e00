package review

import "time"

// The sheet stores timestamps as local Jakarta time with no zone marker;
// readers assume the fixed offset.
var storeZone = time.FixedZone("WIB", 7*60*60)

const storeTimeLayout = "2006-01-02 15:04:05"

// FormatStoreTime renders a timestamp the way the sheet expects it.
func FormatStoreTime(t time.Time) string {
	return t.In(storeZone).Format(storeTimeLayout)
}
