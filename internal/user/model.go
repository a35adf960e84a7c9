package user

import "kisanmandi/internal/utils"

type Role string

const (
	RoleFarmer Role = "FARMER"
	RoleBuyer  Role = "BUYER"
	RoleGuest  Role = "GUEST"
)

func (r Role) Valid() bool {
	switch r {
	case RoleFarmer, RoleBuyer, RoleGuest:
		return true
	}
	return false
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguagePunjabi Language = "pa"

	DefaultLanguage = LanguageEnglish
)

func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguagePunjabi:
		return true
	}
	return false
}

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Role         Role     `json:"role"`
	Language     Language `json:"language"`
	Phone        string   `json:"phone,omitempty"`
	Location     string   `json:"location,omitempty"`
	LandSize     string   `json:"landSize,omitempty"`
	PrimaryCrops []string `json:"primaryCrops,omitempty"`
	Avatar       string   `json:"avatar,omitempty"`
}

// Clone returns a copy that shares no slices with u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.PrimaryCrops = utils.CloneStrings(u.PrimaryCrops)
	return &cp
}

// UpdateProfileParams carries a partial profile; nil fields are left alone.
type UpdateProfileParams struct {
	Name         *string
	Phone        *string
	Location     *string
	LandSize     *string
	PrimaryCrops *[]string
	Avatar       *string
}
