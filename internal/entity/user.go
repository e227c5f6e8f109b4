package entity

import "github.com/docthru/backend/pkg/enum"

type GlobalRole string

var (
	RoleUser  = enum.New(GlobalRole("user"))
	RoleAdmin = enum.New(GlobalRole("admin"))
)

var GlobalAdminRoles = []GlobalRole{RoleAdmin}

type User struct {
	Base

	Nickname string
	Role     GlobalRole `gorm:"type:varchar(16);default:user"`
}
