// AngelaMos | 2026
// dto.go

package favorite

import (
	"time"

	"github.com/carterperez-dev/lifehacking-api/internal/tip"
)

const MaxMergeSize = 1000

const (
	reasonInvalidID   = "Invalid tip id"
	reasonTipNotFound = "Tip not found"
)

type FavoriteResponse struct {
	TipID   string          `json:"tipId"`
	AddedAt time.Time       `json:"addedAt"`
	Tip     tip.TipResponse `json:"tip"`
}

type StatusResponse struct {
	TipID      string `json:"tipId"`
	IsFavorite bool   `json:"isFavorite"`
}

type MergeRequest struct {
	TipIDs []string `json:"tipIds" validate:"required,min=1,max=1000"`
}

type FailedTip struct {
	TipID  string `json:"tipId"`
	Reason string `json:"reason"`
}

// MergeResponse partitions the distinct ids of a merge request.
// TotalReceived counts the ids as sent, repeats included.
type MergeResponse struct {
	TotalReceived int         `json:"totalReceived"`
	Added         int         `json:"added"`
	Skipped       int         `json:"skipped"`
	Failed        int         `json:"failed"`
	AddedTipIDs   []string    `json:"addedTipIds"`
	SkippedTipIDs []string    `json:"skippedTipIds"`
	FailedTipIDs  []FailedTip `json:"failedTipIds"`
}
