package prices

import (
	"github.com/silktrader/foxfaps/pkg/sanitise"
	"github.com/silktrader/foxfaps/pkg/storage/sqlite"
)

// PricePoint is a creator's price observed on a date. Points are only ever appended.
type PricePoint struct {
	Id        int64   `json:"id"`
	CreatorId int64   `json:"creator_id"`
	Price     float64 `json:"price"`
	Date      string  `json:"date"`
}

func (p *PricePoint) fields() sqlite.Fields {
	return sqlite.Fields{
		"id":         &p.Id,
		"creator_id": &p.CreatorId,
		"price":      &p.Price,
		"date":       &p.Date,
	}
}

// PriceData is the body of a recording request; the creator comes from the path.
type PriceData struct {
	Price float64 `json:"price"`
	Date  string  `json:"date"`
}

func sanitisePoint(creatorId int64, price float64, date string) (point PricePoint, err error) {
	if point.CreatorId, err = sanitise.Id("creator_id", creatorId); err != nil {
		return point, err
	}
	if point.Price, err = sanitise.Price(price); err != nil {
		return point, err
	}
	if point.Date, err = sanitise.Date("date", date); err != nil {
		return point, err
	}
	return point, nil
}
