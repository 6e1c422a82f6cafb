package wire

import (
	"github.com/matheus3301/tgclone/internal/signup"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ValidationStatus encodes per-field sign-up errors as an InvalidArgument
// status carrying a BadRequest detail. Descriptions are rule keys.
func ValidationStatus(errs signup.Errors) error {
	st := status.New(codes.InvalidArgument, (&signup.ValidationError{Fields: errs}).Error())
	br := &errdetails.BadRequest{}
	for _, f := range signup.Fields {
		if r, ok := errs[f]; ok {
			br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
				Field:       string(f),
				Description: string(r),
			})
		}
	}
	detailed, err := st.WithDetails(br)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// ValidationErrors recovers the field errors carried by ValidationStatus.
func ValidationErrors(st *status.Status) (signup.Errors, bool) {
	if st.Code() != codes.InvalidArgument {
		return nil, false
	}
	errs := signup.Errors{}
	for _, d := range st.Details() {
		br, ok := d.(*errdetails.BadRequest)
		if !ok {
			continue
		}
		for _, v := range br.GetFieldViolations() {
			errs[signup.Field(v.GetField())] = signup.Rule(v.GetDescription())
		}
	}
	return errs, errs.HasErrors()
}
