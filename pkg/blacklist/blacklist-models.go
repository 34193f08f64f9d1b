package blacklist

import (
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

// BlacklistedCreator is a stored blacklist row, as returned for orphans whose creator is gone.
type BlacklistedCreator struct {
	Id        int64  `json:"id"`
	CreatorId int64  `json:"creator_id"`
	Reason    string `json:"reason"`
	Date      string `json:"date"`
}

func (b *BlacklistedCreator) fields() sqlite.Fields {
	return sqlite.Fields{
		"id":         &b.Id,
		"creator_id": &b.CreatorId,
		"reason":     &b.Reason,
		"date":       &b.Date,
	}
}

// BlacklistedCreatorView resolves the creator's name at query time rather than storing it.
type BlacklistedCreatorView struct {
	BlacklistedCreator
	Name string `json:"name"`
}

func (v *BlacklistedCreatorView) fields() sqlite.Fields {
	var fields = v.BlacklistedCreator.fields()
	fields["name"] = &v.Name
	return fields
}

type BlacklistData struct {
	CreatorId int64  `json:"creator_id"`
	Reason    string `json:"reason"`
	Date      string `json:"date"`
}

func sanitiseEntry(creatorId int64, reason, date string) (data BlacklistData, err error) {
	if data.CreatorId, err = sanitise.Id("creator_id", creatorId); err != nil {
		return data, err
	}
	if data.Reason, err = sanitise.Text("reason", reason); err != nil {
		return data, err
	}
	if data.Date, err = sanitise.Date("date", date); err != nil {
		return data, err
	}
	return data, nil
}
