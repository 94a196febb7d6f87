package models

import "errors"

// Link is a shortened tracking link and its click counters. Counters are
// maintained by the click-tracking backend and arrive here as opaque
// totals; UniqueClicks should never exceed TotalClicks, but external
// data can violate that and consumers are expected to clamp, not fail.
type Link struct {
	Code         string `json:"code"`
	TotalClicks  int64  `json:"total_clicks"`
	UniqueClicks int64  `json:"unique_clicks"`
}

func (l *Link) Validate() error {
	if l.Code == "" {
		return errors.New("code is required")
	}
	return nil
}
