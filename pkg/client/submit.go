package client

import (
	"context"
	"errors"
	"fmt"

	"asset-registry-api/internal/model"
	apperrors "asset-registry-api/pkg/errors"
	"asset-registry-api/pkg/form"
	"asset-registry-api/pkg/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Attachments are the images picked on an employee form. Nil entries keep
// the value already in the form.
type Attachments struct {
	ProfilePicture   *upload.File
	ResumeImage      *upload.File
	CertificateImage *upload.File
}

func (a Attachments) byPath() []struct {
	path string
	file *upload.File
} {
	return []struct {
		path string
		file *upload.File
	}{
		{"profilePicture", a.ProfilePicture},
		{"resumeImage", a.ResumeImage},
		{"certificateImage", a.CertificateImage},
	}
}

// SubmitNewEmployee validates f, uploads the attachments and creates the
// employee. An invalid form returns validation.Errors and sends nothing.
func (c *Client) SubmitNewEmployee(ctx context.Context, f form.Form, files Attachments) (model.Employee, error) {
	e, err := c.prepareEmployee(ctx, OpCreateEmployee, f, files)
	if err != nil {
		return model.Employee{}, err
	}
	return c.CreateEmployee(ctx, e)
}

// SubmitEmployeeUpdate is SubmitNewEmployee for an existing employee.
func (c *Client) SubmitEmployeeUpdate(ctx context.Context, id uuid.UUID, f form.Form, files Attachments) (model.Employee, error) {
	e, err := c.prepareEmployee(ctx, OpUpdateEmployee, f, files)
	if err != nil {
		return model.Employee{}, err
	}
	return c.UpdateEmployee(ctx, id, e)
}

// SubmitSystem validates f and creates the system, or replaces it when id is
// not uuid.Nil.
func (c *Client) SubmitSystem(ctx context.Context, id uuid.UUID, f form.Form) (model.System, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return model.System{}, errs
	}
	op := OpCreateSystem
	if id != uuid.Nil {
		op = OpUpdateSystem
	}
	s, err := f.System()
	if err != nil {
		return model.System{}, c.fail(op, 0, "", err)
	}
	if op == OpCreateSystem {
		return c.CreateSystem(ctx, s)
	}
	return c.UpdateSystem(ctx, id, s)
}

func (c *Client) prepareEmployee(ctx context.Context, op Op, f form.Form, files Attachments) (model.Employee, error) {
	if errs := f.Validate(); len(errs) > 0 {
		return model.Employee{}, errs
	}

	for _, a := range files.byPath() {
		if a.file == nil {
			continue
		}
		url, err := c.upload(ctx, op, *a.file)
		if err != nil {
			return model.Employee{}, err
		}
		if f, err = f.Set(a.path, url); err != nil {
			return model.Employee{}, c.fail(op, 0, "", err)
		}
	}

	e, err := f.Employee()
	if err != nil {
		return model.Employee{}, c.fail(op, 0, "", err)
	}
	return e, nil
}

func (c *Client) upload(ctx context.Context, op Op, file upload.File) (string, error) {
	if c.Uploader == nil {
		return "", c.uploadFailed(op, fmt.Errorf("no uploader configured"))
	}
	url, err := c.Uploader.Upload(ctx, file)
	if err != nil {
		return "", c.uploadFailed(op, err)
	}
	return url, nil
}

func (c *Client) uploadFailed(op Op, err error) *Error {
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrorCodeUpload {
		appErr = apperrors.UploadError(err)
	}
	c.logger.Error("Image upload failed", zap.String("op", string(op)), zap.Error(errors.Unwrap(appErr)))
	return &Error{Op: op, Message: appErr.Message, Err: appErr}
}
