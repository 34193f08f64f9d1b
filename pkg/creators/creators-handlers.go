package creators

import (
	"fmt"
	"net/http"

	JSON "github.com/silktrader/foxfaps/pkg/json-utilities"
	"github.com/silktrader/foxfaps/pkg/rest"
)

func RegisterHandlers(engine *rest.Engine, cr Repository) {
	engine.Get("/creators", readCreators(cr))
	engine.Post("/creators", createCreator(cr))
	engine.Put("/creators/:id", updateCreator(cr))
	engine.Delete("/creators/:id", deleteCreator(cr))
}

func readCreators(cr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		creators, err := cr.ReadAll()
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Ok(writer, creators)
	}
}

func createCreator(cr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		data, err := JSON.Decode[CreatorData](request)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		id, err := cr.Create(data.Name, data.Homepage, data.Rate)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Created(writer, JSON.Outcome{Id: id, Message: "Creator added successfully"})
	}
}

func updateCreator(cr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		data, err := JSON.Decode[CreatorData](request)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		if err = cr.Update(id, data.Name, data.Homepage, data.Rate); err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Message(writer, "Creator updated successfully")
	}
}

func deleteCreator(cr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		deleted, err := cr.Delete(id)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Message(writer, fmt.Sprintf("Successfully deleted %d rows", deleted))
	}
}
