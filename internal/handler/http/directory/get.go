package directory

import (
	"errors"
	"net/http"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/handler/http/pathutil"
	"provider-directory/internal/handler/http/respond"
	"provider-directory/internal/repository"
)

// Detail is the body of a record lookup. Details is omitted when the
// resource's lookup-details flag withholds it.
type Detail struct {
	ID               string                `json:"id"`
	Resource         string                `json:"resource"`
	Name             string                `json:"name"`
	NPI              string                `json:"npi"`
	Location         string                `json:"location"`
	DetailsAvailable bool                  `json:"details_available"`
	Details          *entity.RecordDetails `json:"details,omitempty"`
}

type GetHandler[T any] struct {
	Resource         entity.ResourceType
	Records          repository.Getter[T]
	DetailsAvailable func(entity.ResourceType) bool
}

func (h GetHandler[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ResourceID(r)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	rec, err := h.Records.Get(r.Context(), id)
	if err != nil {
		code := http.StatusBadGateway
		switch {
		case errors.Is(err, entity.ErrNotFound):
			code = http.StatusNotFound
		case errors.Is(err, entity.ErrInvalidInput):
			code = http.StatusBadRequest
		}
		respond.SafeError(w, code, err)
		return
	}

	named, ok := any(rec).(entity.Named)
	if !ok {
		respond.SafeError(w, http.StatusInternalServerError, errors.New("record has no display fields"))
		return
	}
	out := Detail{
		ID:               named.RecordID(),
		Resource:         h.Resource.String(),
		Name:             named.DisplayName(),
		NPI:              named.NPI(),
		Location:         named.Location(),
		DetailsAvailable: h.DetailsAvailable == nil || h.DetailsAvailable(h.Resource),
	}
	if out.DetailsAvailable {
		d := named.Details()
		out.Details = &d
	}
	respond.JSON(w, http.StatusOK, out)
}
