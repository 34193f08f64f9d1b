package prices

import (
	"net/http"

	JSON "github.com/silktrader/foxfaps/pkg/json-utilities"
	"github.com/silktrader/foxfaps/pkg/rest"
)

func RegisterHandlers(engine *rest.Engine, pr Repository) {
	engine.Get("/prices", readPrices(pr))
	engine.Get("/creators/:id/prices", readCreatorPrices(pr))
	engine.Post("/creators/:id/prices", recordPrice(pr))
}

func readPrices(pr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		points, err := pr.ReadAll()
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Ok(writer, points)
	}
}

func readCreatorPrices(pr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		creatorId, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		points, err := pr.ReadByCreator(creatorId)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Ok(writer, points)
	}
}

func recordPrice(pr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		creatorId, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		data, err := JSON.Decode[PriceData](request)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		id, err := pr.Record(creatorId, data.Price, data.Date)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Created(writer, JSON.Outcome{Id: id, Message: "Price recorded successfully"})
	}
}
