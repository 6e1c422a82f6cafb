package wire

import (
	"fmt"

	"github.com/matheus3301/tgclone/internal/contacts"
	"github.com/matheus3301/tgclone/internal/signup"
	"google.golang.org/protobuf/types/known/structpb"
)

// Field names on the wire.
const (
	fieldUsername   = "username"
	fieldPhone      = "phone"
	fieldPassword   = "password"
	fieldConfirm    = "confirm_password"
	fieldUserID     = "user_id"
	fieldQuery      = "query"
	fieldLimit      = "limit"
	fieldCandidates = "candidates"
	fieldCandidate  = "candidate"
	fieldID         = "id"
	fieldName       = "name"
	fieldAvatar     = "avatar"
	fieldStatus     = "status"
	fieldLastSeen   = "last_seen"
	fieldIsOnline   = "is_online"
)

func str(s *structpb.Struct, key string) string {
	return s.GetFields()[key].GetStringValue()
}

// EncodeForm builds a Register request.
func EncodeForm(f signup.Form) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldUsername: f.Username,
		fieldPhone:    f.Phone,
		fieldPassword: f.Password,
		fieldConfirm:  f.ConfirmPassword,
	})
}

// DecodeForm reads a Register request.
func DecodeForm(s *structpb.Struct) signup.Form {
	return signup.Form{
		Username:        str(s, fieldUsername),
		Phone:           str(s, fieldPhone),
		Password:        str(s, fieldPassword),
		ConfirmPassword: str(s, fieldConfirm),
	}
}

// EncodeRegistration builds a Register response.
func EncodeRegistration(r signup.Registration) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldUserID:   r.UserID,
		fieldUsername: r.Username,
	})
}

// DecodeRegistration reads a Register response.
func DecodeRegistration(s *structpb.Struct) signup.Registration {
	return signup.Registration{UserID: str(s, fieldUserID), Username: str(s, fieldUsername)}
}

// EncodeSearch builds a Search request. A zero limit lets the server choose.
func EncodeSearch(query string, limit int) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		fieldQuery: query,
		fieldLimit: limit,
	})
}

// DecodeSearch reads a Search request.
func DecodeSearch(s *structpb.Struct) (query string, limit int) {
	return str(s, fieldQuery), int(s.GetFields()[fieldLimit].GetNumberValue())
}

func candidateMap(c contacts.Candidate) map[string]any {
	return map[string]any{
		fieldID:       c.ID,
		fieldName:     c.Name,
		fieldAvatar:   c.Avatar,
		fieldStatus:   string(c.Status),
		fieldLastSeen: c.LastSeen,
		fieldIsOnline: c.IsOnline,
	}
}

func candidateFrom(s *structpb.Struct) contacts.Candidate {
	return contacts.Candidate{
		ID:       str(s, fieldID),
		Name:     str(s, fieldName),
		Avatar:   str(s, fieldAvatar),
		Status:   contacts.Status(str(s, fieldStatus)),
		LastSeen: str(s, fieldLastSeen),
		IsOnline: s.GetFields()[fieldIsOnline].GetBoolValue(),
	}
}

// EncodeCandidates builds a Search response.
func EncodeCandidates(cs []contacts.Candidate) (*structpb.Struct, error) {
	list := make([]any, len(cs))
	for i, c := range cs {
		list[i] = candidateMap(c)
	}
	return structpb.NewStruct(map[string]any{fieldCandidates: list})
}

// DecodeCandidates reads a Search response.
func DecodeCandidates(s *structpb.Struct) ([]contacts.Candidate, error) {
	values := s.GetFields()[fieldCandidates].GetListValue().GetValues()
	out := make([]contacts.Candidate, 0, len(values))
	for i, v := range values {
		cs := v.GetStructValue()
		if cs == nil {
			return nil, fmt.Errorf("candidate %d: not an object", i)
		}
		out = append(out, candidateFrom(cs))
	}
	return out, nil
}

// EncodeCandidate builds a Commit request or response.
func EncodeCandidate(c contacts.Candidate) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{fieldCandidate: candidateMap(c)})
}

// DecodeCandidate reads a Commit request or response.
func DecodeCandidate(s *structpb.Struct) (contacts.Candidate, error) {
	cs := s.GetFields()[fieldCandidate].GetStructValue()
	if cs == nil {
		return contacts.Candidate{}, fmt.Errorf("missing %q", fieldCandidate)
	}
	return candidateFrom(cs), nil
}
