package http

import (
	"net/http"

	"github.com/punchdeck/attendance-backend-go/internal/domain/directory"
	"github.com/punchdeck/attendance-backend-go/internal/handler/http/response"
)

type DirectoryHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type directoryHandlerImpl struct {
	dir directory.Directory
}

func NewDirectoryHandler(dir directory.Directory) DirectoryHandler {
	return &directoryHandlerImpl{dir: dir}
}

// List implements DirectoryHandler.
func (h *directoryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.dir.Entries())
}
