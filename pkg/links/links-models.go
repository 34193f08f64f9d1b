package links

import (
	"github.com/silktrader/foxfaps/pkg/ntime"
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

// InterestingLink is a discovered URL waiting to be downloaded. Downloaded has no transition guard:
// callers may set it either way.
type InterestingLink struct {
	Id         int64      `json:"id"`
	Url        string     `json:"url"`
	Source     *string    `json:"source"`
	Downloaded bool       `json:"downloaded"`
	Date       ntime.Date `json:"date"`
}

func (l *InterestingLink) fields() sqlite.Fields {
	return sqlite.Fields{
		"id":         &l.Id,
		"url":        &l.Url,
		"source":     &l.Source,
		"downloaded": &l.Downloaded,
		"date":       &l.Date,
	}
}

// LinkHistoryEntry records a completed download.
type LinkHistoryEntry InterestingLink

func (e *LinkHistoryEntry) fields() sqlite.Fields {
	return (*InterestingLink)(e).fields()
}

type LinkData struct {
	Url        string     `json:"url"`
	Source     *string    `json:"source"`
	Downloaded bool       `json:"downloaded"`
	Date       ntime.Date `json:"date"`
}

func sanitiseLink(url string, source *string, downloaded bool, date *string) (data LinkData, err error) {
	if data.Url, err = sanitise.URL("url", url); err != nil {
		return data, err
	}
	if data.Source, err = sanitise.OptionalText("source", source); err != nil {
		return data, err
	}
	validDate, err := sanitise.OptionalDate("date", date)
	if err != nil {
		return data, err
	}
	data.Date = ntime.From(validDate)
	data.Downloaded = downloaded
	return data, nil
}
