package blacklist

import (
	"net/http"

	JSON "github.com/silktrader/foxfaps/pkg/json-utilities"
	"github.com/silktrader/foxfaps/pkg/rest"
)

func RegisterHandlers(engine *rest.Engine, br Repository) {
	engine.Get("/blacklist", readBlacklist(br))
	engine.Get("/blacklist-orphans", readOrphans(br))
	engine.Post("/blacklist", createEntry(br))
	engine.Put("/blacklist/:id", updateEntry(br))
	engine.Delete("/blacklist/:id", deleteEntry(br))
}

func readBlacklist(br Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		entries, err := br.ReadAll()
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Ok(writer, entries)
	}
}

func readOrphans(br Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		orphans, err := br.ReadOrphans()
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Ok(writer, orphans)
	}
}

func createEntry(br Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		data, err := JSON.Decode[BlacklistData](request)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		id, err := br.Create(data.CreatorId, data.Reason, data.Date)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Created(writer, JSON.Outcome{Id: id, Message: "Blacklisted creator added successfully"})
	}
}

func updateEntry(br Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		data, err := JSON.Decode[BlacklistData](request)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		if err = br.Update(id, data.CreatorId, data.Reason, data.Date); err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Message(writer, "Blacklisted creator updated successfully")
	}
}

func deleteEntry(br Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		if err = br.Delete(id); err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Message(writer, "Blacklisted creator deleted successfully")
	}
}
