package report

import "errors"

var (
	ErrReportNotFound  = errors.New("report not found")
	ErrDuplicateReport = errors.New("a report for this date already exists")
	ErrCommentNotFound = errors.New("comment not found")
)
