package trend

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/jgoulah/gridtrend/pkg/models"
)

// OrdinalDay converts a date to a day count since the Unix epoch. Strictly
// monotonic for day-resolution UTC dates; used as the regression input.
func OrdinalDay(t time.Time) int64 {
	return models.DayOf(t).Unix() / 86400
}

// Fingerprint computes a deterministic digest of the metric name plus every
// (date, value) pair in series order. Any appended row or edited value yields
// a different fingerprint.
func Fingerprint(metric models.Metric, series models.DailySeries) string {
	h := xxhash.New()
	h.WriteString(string(metric))

	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(len(series)))
	h.Write(buf[:8])

	for _, rec := range series {
		binary.LittleEndian.PutUint64(buf[:8], uint64(OrdinalDay(rec.Date)))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(rec.Value(metric)))
		h.Write(buf[:])
	}

	return fmt.Sprintf("%016x", h.Sum64())
}
