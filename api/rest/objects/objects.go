// Package objects is the HTTP API of the blob store used by the blog
// editor: markdown content, images, and deletion by object URL.
package objects

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/gorilla/schema"

	"github.com/timemore/blobstore/api/rest"
	resterrs "github.com/timemore/blobstore/api/rest/errors"
	"github.com/timemore/blobstore/errors"
	"github.com/timemore/blobstore/logger"
	"github.com/timemore/blobstore/media"
	mediastore "github.com/timemore/blobstore/media/store"
)

var log = logger.NewPkgLogger()

var schemaDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

const (
	imageFormField = "file"
	// multipartMemory is how much of a multipart body is kept in
	// memory, the rest goes to temporary files.
	multipartMemory = 4 << 20
)

type UploadContentRequest struct {
	Content string `json:"content"`
}

type UpdateContentRequest struct {
	ObjectURL string `json:"object_url"`
	Content   string `json:"content"`
}

type DeleteObjectQuery struct {
	ObjectURL string `schema:"object_url,required"`
}

type ObjectURLResponse struct {
	URL string `json:"url"`
}

type Handler struct {
	store         *mediastore.Store
	maxUploadSize int64
}

// NewWebService builds the routes. maxUploadSize limits the body of
// image uploads, in bytes; zero or less disables the limit.
func NewWebService(store *mediastore.Store, maxUploadSize int64) *restful.WebService {
	h := &Handler{store: store, maxUploadSize: maxUploadSize}

	ws := new(restful.WebService)
	ws.Path("/").Produces(restful.MIME_JSON)

	ws.Route(ws.POST("/contents").To(h.uploadContent).
		Doc("Store a new markdown document").
		Consumes(restful.MIME_JSON).
		Reads(UploadContentRequest{}).
		Returns(http.StatusCreated, "Created", ObjectURLResponse{}))
	ws.Route(ws.PUT("/contents").To(h.updateContent).
		Doc("Replace the markdown document at an object URL").
		Consumes(restful.MIME_JSON).
		Reads(UpdateContentRequest{}).
		Returns(http.StatusNoContent, "Updated", nil))
	ws.Route(ws.POST("/images").To(h.uploadImage).
		Doc("Store an uploaded image").
		Consumes("multipart/form-data").
		Returns(http.StatusCreated, "Created", ObjectURLResponse{}))
	ws.Route(ws.DELETE("/objects").To(h.deleteObject).
		Doc("Delete the object at an object URL").
		Param(ws.QueryParameter("object_url", "URL returned by an upload").Required(true)).
		Returns(http.StatusNoContent, "Deleted", nil))

	return ws
}

func respondError(resp *restful.Response, err error) {
	statusCode, body := resterrs.Response(err)
	rest.RespondTo(resp).Error(body, statusCode)
}

func respondTooLarge(resp *restful.Response) {
	rest.RespondTo(resp).Error(&rest.ErrorResponse{
		Code:        "request_too_large",
		Description: http.StatusText(http.StatusRequestEntityTooLarge),
	}, http.StatusRequestEntityTooLarge)
}

func (h *Handler) uploadContent(req *restful.Request, resp *restful.Response) {
	var reqBody UploadContentRequest
	if err := req.ReadEntity(&reqBody); err != nil {
		respondError(resp, errors.Arg("body", err))
		return
	}

	objectURL, err := h.store.UploadMarkdownContent(req.Request.Context(), reqBody.Content)
	if err != nil {
		respondError(resp, err)
		return
	}

	rest.RespondTo(resp).SuccessWithHTTPStatusCode(&ObjectURLResponse{URL: objectURL}, http.StatusCreated)
}

func (h *Handler) updateContent(req *restful.Request, resp *restful.Response) {
	var reqBody UpdateContentRequest
	if err := req.ReadEntity(&reqBody); err != nil {
		respondError(resp, errors.Arg("body", err))
		return
	}
	if reqBody.ObjectURL == "" {
		respondError(resp, errors.ArgMsg("body", "incomplete",
			errors.EntMsg("object_url", "empty")))
		return
	}

	err := h.store.UpdateMarkdownContent(req.Request.Context(), reqBody.ObjectURL, reqBody.Content)
	if err != nil {
		respondError(resp, err)
		return
	}

	rest.RespondTo(resp).Success(nil)
}

func (h *Handler) uploadImage(req *restful.Request, resp *restful.Response) {
	httpReq := req.Request
	if h.maxUploadSize > 0 {
		if httpReq.ContentLength > h.maxUploadSize {
			respondTooLarge(resp)
			return
		}
		httpReq.Body = http.MaxBytesReader(resp, httpReq.Body, h.maxUploadSize)
	}
	if err := httpReq.ParseMultipartForm(multipartMemory); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			respondTooLarge(resp)
			return
		}
		respondError(resp, errors.Arg("body", err))
		return
	}
	defer func() {
		_ = httpReq.MultipartForm.RemoveAll()
	}()

	fileHeaders := httpReq.MultipartForm.File[imageFormField]
	if len(fileHeaders) == 0 {
		respondError(resp, errors.ArgMsg(imageFormField, "missing"))
		return
	}
	file := multipartFile{fileHeaders[0]}

	imageInfo := media.GetMediaTypeInfo(media.MediaType_IMAGE)
	if !imageInfo.IsContentTypeAllowed(file.ContentType()) {
		respondError(resp, errors.ArgMsg(imageFormField, "content type "+file.ContentType()+" not allowed"))
		return
	}
	if detected := detectContentType(file); detected != "" && !imageInfo.IsContentTypeAllowed(detected) {
		log.WithRequest(httpReq).Warn().
			Str("declared", file.ContentType()).
			Str("detected", detected).
			Msg("image content does not match its declared type")
	}

	objectURL, err := h.store.UploadImage(httpReq.Context(), file)
	if err != nil {
		respondError(resp, err)
		return
	}

	rest.RespondTo(resp).SuccessWithHTTPStatusCode(&ObjectURLResponse{URL: objectURL}, http.StatusCreated)
}

func (h *Handler) deleteObject(req *restful.Request, resp *restful.Response) {
	var query DeleteObjectQuery
	if err := schemaDecoder.Decode(&query, req.Request.URL.Query()); err != nil {
		respondError(resp, errors.Arg("object_url", err))
		return
	}

	if err := h.store.DeleteFileObject(req.Request.Context(), query.ObjectURL); err != nil {
		respondError(resp, err)
		return
	}

	rest.RespondTo(resp).Success(nil)
}

// detectContentType sniffs the head of the file. It returns an empty
// string when the file cannot be read.
func detectContentType(file multipartFile) string {
	f, err := file.Open()
	if err != nil {
		return ""
	}
	defer f.Close()

	mime, err := media.DetectReader(f)
	if err != nil {
		return ""
	}
	return mime.String()
}

// multipartFile exposes a multipart form file as a store file.
type multipartFile struct {
	header *multipart.FileHeader
}

var _ mediastore.File = multipartFile{}

func (f multipartFile) Filename() string    { return f.header.Filename }
func (f multipartFile) ContentType() string { return f.header.Header.Get("Content-Type") }
func (f multipartFile) Size() int64         { return f.header.Size }

func (f multipartFile) Open() (io.ReadCloser, error) { return f.header.Open() }
