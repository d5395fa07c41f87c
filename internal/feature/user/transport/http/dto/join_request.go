// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

// JoinReq represents the form posted to /join.
type JoinReq struct {
	Username string `form:"username" binding:"notblank"`
	Password string `form:"password" binding:"notblank"`
	Email    string `form:"email" binding:"notblank"`
}
