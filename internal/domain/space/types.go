package space

type Type string

const (
	TypeOffice      Type = "OFFICE"
	TypeMeetingRoom Type = "MEETING_ROOM"
	TypePhoneBooth  Type = "PHONE_BOOTH"
	TypeCommonArea  Type = "COMMON_AREA"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeOffice, TypeMeetingRoom, TypePhoneBooth, TypeCommonArea:
		return true
	default:
		return false
	}
}

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}
