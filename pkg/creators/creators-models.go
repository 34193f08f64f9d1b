package creators

import (
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

type Creator struct {
	Id       int64  `json:"id"`
	Name     string `json:"name"`
	Homepage string `json:"homepage"`
	Rate     int    `json:"rate"`
}

func (c *Creator) fields() sqlite.Fields {
	return sqlite.Fields{
		"id":       &c.Id,
		"name":     &c.Name,
		"homepage": &c.Homepage,
		"rate":     &c.Rate,
	}
}

// CreatorData is the request body for both additions and full replacements.
type CreatorData struct {
	Name     string `json:"name"`
	Homepage string `json:"homepage"`
	Rate     int    `json:"rate"`
}

// sanitiseCreator returns the values that will actually be stored.
func sanitiseCreator(name, homepage string, rate int) (data CreatorData, err error) {
	if data.Name, err = sanitise.RequiredText("name", name); err != nil {
		return data, err
	}
	if data.Homepage, err = sanitise.URL("homepage", homepage); err != nil {
		return data, err
	}
	if data.Rate, err = sanitise.Rate(rate); err != nil {
		return data, err
	}
	return data, nil
}
