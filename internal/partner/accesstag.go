package partner

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// tagMinuteLayout truncates timestamps to the minute. Retrying an identical
// mutating request within the same minute reproduces the same tag, which the
// partner uses to suppress duplicate side effects. Across a minute boundary
// the tag changes, so this is best-effort deduplication only; callers that
// need a stable key supply their own reference (see Adapter.CreatePayout).
const tagMinuteLayout = "2006-01-02 15:04"

// accessTag derives the deterministic idempotency token sent in the
// accessTag field of mutating requests: the md5 hex digest of the
// concatenated elements (operation name first, then arguments).
func accessTag(elements ...any) string {
	var b strings.Builder
	for _, el := range elements {
		b.WriteString(tagElement(el))
	}
	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// tagElement renders a scalar the same way regardless of call site so that
// equal logical inputs always hash identically. Nil renders empty, matching
// omitted optional arguments.
func tagElement(el any) string {
	switch v := el.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case decimal.Decimal:
		return v.StringFixed(2)
	case time.Time:
		return v.Format(tagMinuteLayout)
	case *string:
		if v == nil {
			return ""
		}
		return *v
	default:
		return fmt.Sprint(v)
	}
}
