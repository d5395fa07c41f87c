package dto

// LoginReq represents the form posted to /login.
type LoginReq struct {
	Username string `form:"username" binding:"notblank"`
	Password string `form:"password" binding:"notblank"`
}
