package submission

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gradia/gradia/core"
	"github.com/gradia/gradia/core/assignment"
	"github.com/gradia/gradia/core/student"
)

var ErrNotFound = core.NewNotFoundError("Submission not found")

type (
	Repository interface {
		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		QueryAllSubmissions(ctx context.Context, opts core.ListOptions) ([]Submission, error)
		QuerySubmissionsByAssignment(ctx context.Context, assignmentID primitive.ObjectID) ([]Submission, error)
		GetSubmissionByID(ctx context.Context, id primitive.ObjectID) (Submission, error)
		// SetSubmissionGrade sets/overwrites the grade and marks the
		// submission graded.
		SetSubmissionGrade(ctx context.Context, id primitive.ObjectID, grade float64) (Submission, error)
		DeleteSubmission(ctx context.Context, id primitive.ObjectID) error
	}

	// FileStore is any store that can hold uploaded submission attachments.
	FileStore interface {
		// Save writes src under the given stored name and returns the
		// publicly resolvable path.
		Save(ctx context.Context, name string, src multipart.File) (string, error)
		Remove(ctx context.Context, url string) error
	}

	Service struct {
		repo        Repository
		assignments assignment.Repository
		students    student.Repository
		files       FileStore
		policy      UploadPolicy
	}
)

func NewService(repo Repository, assignments assignment.Repository, students student.Repository, files FileStore) *Service {
	return &Service{
		repo:        repo,
		assignments: assignments,
		students:    students,
		files:       files,
		policy:      DefaultUploadPolicy,
	}
}

// Submit runs the submission workflow: upload policy check, field validation,
// assignment lookup, file + submission persistence, then the reference append
// on the parent assignment. A failed append compensates by removing the
// stored file and the orphan submission, so the two entities stay consistent.
func (svc *Service) Submit(ctx context.Context, assignmentID string, ns NewSubmission, fh *multipart.FileHeader) (Submission, error) {
	var vf *ValidatedFile
	if fh != nil {
		v, err := ValidateUpload(fh, svc.policy)
		if err != nil {
			return Submission{}, err
		}
		vf = &v
	}

	if err := ns.Validate(); err != nil {
		return Submission{}, err
	}

	aid, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return Submission{}, assignment.ErrNotFound
	}
	if _, err := svc.assignments.GetAssignmentByID(ctx, aid); err != nil {
		return Submission{}, err
	}

	now := time.Now().UTC()
	sub := Submission{
		AssignmentID: aid,
		Student:      ns.Student,
		Content:      ns.Content,
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if sid, err := primitive.ObjectIDFromHex(ns.StudentID); err == nil {
		sub.StudentID = &sid
	}

	if vf != nil {
		src, err := fh.Open()
		if err != nil {
			return Submission{}, errors.Wrap(err, "opening upload")
		}
		defer src.Close()

		url, err := svc.files.Save(ctx, vf.Name, src)
		if err != nil {
			return Submission{}, errors.Wrap(err, "storing upload")
		}
		sub.FileURL = url
		sub.FileName = vf.OriginalName
	}

	created, err := svc.repo.CreateSubmission(ctx, sub)
	if err != nil {
		svc.discardFile(ctx, sub)
		return Submission{}, errors.Wrap(err, "creating submission")
	}

	if err := svc.assignments.AppendSubmission(ctx, aid, created.ID); err != nil {
		// compensate: drop the orphan before surfacing the failure
		_ = svc.repo.DeleteSubmission(ctx, created.ID)
		svc.discardFile(ctx, created)
		return Submission{}, errors.Wrap(err, "linking submission to assignment")
	}
	return created, nil
}

func (svc *Service) discardFile(ctx context.Context, sub Submission) {
	if sub.FileURL != "" {
		_ = svc.files.Remove(ctx, sub.FileURL)
	}
}

// QueryByAssignment returns all submissions for an assignment with their
// student identity references resolved to display fields when present.
func (svc *Service) QueryByAssignment(ctx context.Context, assignmentID string) ([]Resolved, error) {
	aid, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return nil, assignment.ErrNotFound
	}

	subs, err := svc.repo.QuerySubmissionsByAssignment(ctx, aid)
	if err != nil {
		return nil, err
	}

	resolved := make([]Resolved, 0, len(subs))
	for _, sub := range subs {
		res := Resolved{Submission: sub}
		if sub.StudentID != nil {
			if std, err := svc.students.GetStudentByID(ctx, *sub.StudentID); err == nil {
				res.StudentName = std.Name
				res.StudentEmail = std.Email
			}
		}
		resolved = append(resolved, res)
	}
	return resolved, nil
}

// QueryAll returns every submission, each carrying its parent assignment's
// title inline; stale references are left unresolved.
func (svc *Service) QueryAll(ctx context.Context, opts core.ListOptions) ([]WithAssignment, error) {
	subs, err := svc.repo.QueryAllSubmissions(ctx, opts)
	if err != nil {
		return nil, err
	}

	titles := make(map[primitive.ObjectID]string)
	out := make([]WithAssignment, 0, len(subs))
	for _, sub := range subs {
		title, ok := titles[sub.AssignmentID]
		if !ok {
			if asgmt, err := svc.assignments.GetAssignmentByID(ctx, sub.AssignmentID); err == nil {
				title = asgmt.Title
			}
			titles[sub.AssignmentID] = title
		}
		out = append(out, WithAssignment{Submission: sub, AssignmentTitle: title})
	}
	return out, nil
}

// SetGrade sets/overwrites the grade on a submission. Re-grading overwrites
// the prior value.
func (svc *Service) SetGrade(ctx context.Context, id string, gs GradeSubmission) (Submission, error) {
	if err := gs.Validate(); err != nil {
		return Submission{}, err
	}
	sid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Submission{}, ErrNotFound
	}
	return svc.repo.SetSubmissionGrade(ctx, sid, *gs.Grade)
}
