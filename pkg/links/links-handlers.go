package links

import (
	"net/http"

	JSON "github.com/silktrader/foxfaps/pkg/json-utilities"
	"github.com/silktrader/foxfaps/pkg/rest"
)

func RegisterHandlers(engine *rest.Engine, lr Repository) {
	engine.Get("/links", readLinks(lr))
	engine.Post("/links", createLink(lr))
	engine.Put("/links/:id", updateLink(lr))
	engine.Delete("/links/:id", deleteLink(lr))
	engine.Post("/links/:id/downloaded", markDownloaded(lr))
	engine.Get("/links-history", readHistory(lr))
}

func readLinks(lr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		interestingLinks, err := lr.ReadAll()
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Ok(writer, interestingLinks)
	}
}

func createLink(lr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		data, err := JSON.Decode[LinkData](request)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		id, err := lr.Create(data.Url, data.Source, data.Downloaded, data.Date.Ptr())
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Created(writer, JSON.Outcome{Id: id, Message: "Interesting link added successfully"})
	}
}

func updateLink(lr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		data, err := JSON.Decode[LinkData](request)
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		if err = lr.Update(id, data.Url, data.Source, data.Downloaded, data.Date.Ptr()); err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Message(writer, "Interesting link updated successfully")
	}
}

func deleteLink(lr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		if err = lr.Delete(id); err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Message(writer, "Interesting link deleted successfully")
	}
}

// markDownloaded handles the POST "/links/:id/downloaded" route, called once a download completes
func markDownloaded(lr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := rest.GetId(request, "id")
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}

		if err = lr.MarkDownloaded(id); err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Message(writer, "Interesting link marked as downloaded")
	}
}

func readHistory(lr Repository) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		entries, err := lr.ReadHistory()
		if err != nil {
			JSON.Failure(writer, request, err)
			return
		}
		JSON.Ok(writer, entries)
	}
}
