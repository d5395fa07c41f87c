// Package dto defines data transfer objects for the board feature's HTTP transport layer.
package dto

// SaveBoardReq represents the form posted to /board/save.
type SaveBoardReq struct {
	Title   string `form:"title" binding:"notblank"`
	Content string `form:"content" binding:"notblank"`
}

// UpdateBoardReq represents the form posted to /board/{id}/update-form.
// It carries no binding rules: the fields are validated only after ownership is confirmed.
type UpdateBoardReq struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}
