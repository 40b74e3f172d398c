package api

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"ducktodo/pkg/client"
	"ducktodo/pkg/model"
	"ducktodo/pkg/sanitizer"
	"ducktodo/pkg/validation"
)

const SortByPriority = "byPriority"

type TaskService interface {
	CreateTask(ctx context.Context, req model.CreateTaskRequest) (*model.TaskDetail, error)
	UpdateTask(ctx context.Context, req model.UpdateTaskRequest) (*model.TaskDetail, error)
	DeleteTask(ctx context.Context, taskID string) error
	GetTaskDetail(ctx context.Context, taskID string) (*model.TaskDetail, error)

	ListTasksByGroup(ctx context.Context, taskGroupID string, q model.TaskQuery) ([]model.TaskSummary, error)
	PageTasksByGroup(ctx context.Context, taskGroupID string, q model.TaskQuery) (*model.Page[model.TaskSummary], error)
	ListMyTasks(ctx context.Context, q model.TaskQuery) ([]model.TaskSummary, error)
	PageMyTasks(ctx context.Context, q model.TaskQuery) (*model.Page[model.TaskSummary], error)
	MySchedule(ctx context.Context, q model.ScheduleQuery) ([]model.TaskSummary, error)

	ListChildTasks(ctx context.Context, taskID string) ([]model.ChildTask, error)
	AddChildTask(ctx context.Context, req model.AddChildTaskRequest) (*model.ChildTask, error)
	UpdateChildTask(ctx context.Context, taskID string, req model.UpdateChildTaskRequest) (*model.ChildTask, error)
	DeleteChildTask(ctx context.Context, taskID, childTaskID string) error
	ReorderChildTasks(ctx context.Context, taskID string, orderedChildIDs []string) ([]model.ChildTask, error)

	ListTaskFiles(ctx context.Context, taskID string) ([]model.TaskFile, error)
	UploadTaskFile(ctx context.Context, taskID string, file client.File, remark string) (*model.TaskFile, error)
	DeleteTaskFile(ctx context.Context, taskID, taskFileID string) error
	DownloadTaskFile(ctx context.Context, file model.TaskFile) (bool, error)

	AddTaskHelper(ctx context.Context, taskID, userID string) (*model.TaskUserRelation, error)
	DeleteTaskHelper(ctx context.Context, taskID, taskHelperID string) error
	ListTaskAudits(ctx context.Context, taskID string) ([]model.TaskAudit, error)
}

type taskService struct {
	deps
}

func newTaskService(d deps) TaskService {
	return &taskService{deps: d}
}

func (s *taskService) CreateTask(ctx context.Context, req model.CreateTaskRequest) (*model.TaskDetail, error) {
	s.sanitizeCreate(&req)

	if err := s.check(req); err != nil {
		return nil, err
	}
	if req.StartTime != "" && validation.CompareDateStrings(req.StartTime, req.DueTime) > 0 {
		return nil, invalid("startTime", "startTime must not be after dueTime")
	}

	var task model.TaskDetail
	if err := s.client.Post(ctx, "/tasks", req, &task); err != nil {
		return nil, err
	}
	s.log.Info("Task created", "task_id", task.TaskID, "task_group_id", req.TaskGroupID)
	return &task, nil
}

func (s *taskService) sanitizeCreate(req *model.CreateTaskRequest) {
	req.TaskGroupID = validation.Trim(req.TaskGroupID)
	req.TaskName = sanitizer.NormalizeName(req.TaskName)
	req.TaskDescription = validation.Trim(req.TaskDescription)
	req.StartTime = normalizeDate(req.StartTime)
	req.DueTime = normalizeDate(req.DueTime)
	req.HelperUserIDList = sanitizer.NormalizeIDs(req.HelperUserIDList)
	if req.ChildTaskList == nil {
		req.ChildTaskList = []model.NewChildTask{}
	}
	for i := range req.ChildTaskList {
		child := &req.ChildTaskList[i]
		child.ChildTaskName = sanitizer.NormalizeName(child.ChildTaskName)
		child.DueTime = normalizeDate(child.DueTime)
		child.AssigneeUserID = validation.Trim(child.AssigneeUserID)
	}
}

// UpdateTask sends only the fields that are set. A start date that does not
// parse is dropped; a due date that does not parse is rejected.
func (s *taskService) UpdateTask(ctx context.Context, req model.UpdateTaskRequest) (*model.TaskDetail, error) {
	req.TaskID = validation.Trim(req.TaskID)
	if req.TaskName != nil {
		name := sanitizer.NormalizeName(*req.TaskName)
		req.TaskName = &name
	}
	req.TaskDescription = trimPtr(req.TaskDescription)

	if req.StartTime != nil {
		req.StartTime = datePtrOrNil(*req.StartTime)
	}
	if req.FinishTime != nil {
		req.FinishTime = datePtrOrNil(*req.FinishTime)
	}
	if req.DueTime != nil {
		raw := validation.Trim(*req.DueTime)
		req.DueTime = datePtrOrNil(raw)
		if raw != "" && req.DueTime == nil {
			return nil, invalid("dueTime", "dueTime must be a date (YYYY-MM-DD)")
		}
	}

	if err := s.check(req); err != nil {
		return nil, err
	}
	if req.StartTime != nil && req.DueTime != nil && validation.CompareDateStrings(*req.StartTime, *req.DueTime) > 0 {
		return nil, invalid("dueTime", "dueTime must not be before startTime")
	}

	var task model.TaskDetail
	if err := s.client.Put(ctx, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, taskID string) error {
	id, err := requireID("taskId", taskID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/tasks/%s", id), nil, nil)
}

func (s *taskService) GetTaskDetail(ctx context.Context, taskID string) (*model.TaskDetail, error) {
	id, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	var task model.TaskDetail
	if err := s.client.Get(ctx, pathf("/tasks/%s", id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *taskService) ListTasksByGroup(ctx context.Context, taskGroupID string, q model.TaskQuery) ([]model.TaskSummary, error) {
	id, err := requireID("taskGroupId", taskGroupID)
	if err != nil {
		return nil, err
	}
	query, err := taskQuery(q, false)
	if err != nil {
		return nil, err
	}
	var tasks []model.TaskSummary
	if err := s.client.Get(ctx, pathf("/tasks/taskgroups/%s/tasks", id), query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) PageTasksByGroup(ctx context.Context, taskGroupID string, q model.TaskQuery) (*model.Page[model.TaskSummary], error) {
	id, err := requireID("taskGroupId", taskGroupID)
	if err != nil {
		return nil, err
	}
	query, err := taskQuery(q, true)
	if err != nil {
		return nil, err
	}
	var page model.Page[model.TaskSummary]
	if err := s.client.Get(ctx, pathf("/tasks/taskgroups/%s/tasks/page", id), query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *taskService) ListMyTasks(ctx context.Context, q model.TaskQuery) ([]model.TaskSummary, error) {
	query, err := taskQuery(q, false)
	if err != nil {
		return nil, err
	}
	var tasks []model.TaskSummary
	if err := s.client.Get(ctx, "/tasks/me", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) PageMyTasks(ctx context.Context, q model.TaskQuery) (*model.Page[model.TaskSummary], error) {
	query, err := taskQuery(q, true)
	if err != nil {
		return nil, err
	}
	var page model.Page[model.TaskSummary]
	if err := s.client.Get(ctx, "/tasks/me/page", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *taskService) MySchedule(ctx context.Context, q model.ScheduleQuery) ([]model.TaskSummary, error) {
	if q.Year <= 0 || q.Month <= 0 {
		return nil, invalid("year", "year and month are required")
	}
	if q.Month > 12 {
		return nil, invalid("month", "month must be between 1 and 12, got %d", q.Month)
	}
	mode, err := sortMode(q.SortByMode)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("year", strconv.Itoa(q.Year))
	query.Set("month", strconv.Itoa(q.Month))
	setIfNotBlank(query, "sortByMode", mode)
	setIfNotBlank(query, "taskGroupId", strings.Join(sanitizer.NormalizeIDs(q.TaskGroupIDs), ","))

	var tasks []model.TaskSummary
	if err := s.client.Get(ctx, "/tasks/me/schedule", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) ListChildTasks(ctx context.Context, taskID string) ([]model.ChildTask, error) {
	id, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	var children []model.ChildTask
	if err := s.client.Get(ctx, pathf("/tasks/%s/children", id), nil, &children); err != nil {
		return nil, err
	}
	return children, nil
}

func (s *taskService) AddChildTask(ctx context.Context, req model.AddChildTaskRequest) (*model.ChildTask, error) {
	req.TaskID = validation.Trim(req.TaskID)
	req.ChildTaskName = validation.Trim(req.ChildTaskName)
	req.DueTime = normalizeDate(req.DueTime)
	req.ChildTaskAssigneeID = validation.Trim(req.ChildTaskAssigneeID)

	if err := s.check(req); err != nil {
		return nil, err
	}
	var child model.ChildTask
	if err := s.client.Post(ctx, "/tasks/children", req, &child); err != nil {
		return nil, err
	}
	return &child, nil
}

// UpdateChildTask accepts a blank name, which the gateway ignores, but a
// non-blank one must have at least two characters.
func (s *taskService) UpdateChildTask(ctx context.Context, taskID string, req model.UpdateChildTaskRequest) (*model.ChildTask, error) {
	tid, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	req.ChildTaskID = validation.Trim(req.ChildTaskID)
	req.ChildTaskName = trimPtr(req.ChildTaskName)
	req.ChildTaskAssigneeID = trimPtr(req.ChildTaskAssigneeID)
	if req.DueTime != nil {
		req.DueTime = datePtrOrNil(*req.DueTime)
	}

	if req.ChildTaskName != nil && *req.ChildTaskName != "" && !validation.IsMinLength(*req.ChildTaskName, 2) {
		return nil, invalid("childTaskName", "childTaskName must be at least 2 characters")
	}
	if err := s.check(req); err != nil {
		return nil, err
	}

	var child model.ChildTask
	if err := s.client.Put(ctx, pathf("/tasks/%s/children", tid), req, &child); err != nil {
		return nil, err
	}
	return &child, nil
}

func (s *taskService) DeleteChildTask(ctx context.Context, taskID, childTaskID string) error {
	tid, err := requireID("taskId", taskID)
	if err != nil {
		return err
	}
	cid, err := requireID("childTaskId", childTaskID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/tasks/%s/children/%s", tid, cid), nil, nil)
}

func (s *taskService) ReorderChildTasks(ctx context.Context, taskID string, orderedChildIDs []string) ([]model.ChildTask, error) {
	tid, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	ids := sanitizer.NormalizeIDs(orderedChildIDs)
	if len(ids) == 0 {
		return nil, invalid("orderedChildIds", "an ordered list of child task ids is required")
	}
	var children []model.ChildTask
	if err := s.client.Put(ctx, pathf("/tasks/%s/children/order", tid), ids, &children); err != nil {
		return nil, err
	}
	return children, nil
}

func (s *taskService) ListTaskFiles(ctx context.Context, taskID string) ([]model.TaskFile, error) {
	id, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	var files []model.TaskFile
	if err := s.client.Get(ctx, pathf("/tasks/%s/files", id), nil, &files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *taskService) UploadTaskFile(ctx context.Context, taskID string, file client.File, remark string) (*model.TaskFile, error) {
	id, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	if file.Reader == nil {
		return nil, invalid("file", "file is required")
	}
	extra := map[string]string{"remark": validation.Trim(remark)}

	var uploaded model.TaskFile
	if err := s.client.Upload(ctx, pathf("/tasks/%s/files", id), file, client.DefaultFileField, extra, &uploaded); err != nil {
		return nil, err
	}
	s.log.Info("Task file uploaded", "task_id", id, "task_file_id", uploaded.TaskFileID)
	return &uploaded, nil
}

func (s *taskService) DeleteTaskFile(ctx context.Context, taskID, taskFileID string) error {
	tid, err := requireID("taskId", taskID)
	if err != nil {
		return err
	}
	fid, err := requireID("taskFileId", taskFileID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/tasks/%s/files/%s", tid, fid), nil, nil)
}

// DownloadTaskFile fetches the stored object at file.TaskFilePath and saves
// it under the file's own name.
func (s *taskService) DownloadTaskFile(ctx context.Context, file model.TaskFile) (bool, error) {
	path := validation.Trim(file.TaskFilePath)
	if path == "" {
		return false, invalid("taskFilePath", "taskFilePath is required")
	}
	return s.client.Download(ctx, path, nil, file.TaskFileName)
}

func (s *taskService) AddTaskHelper(ctx context.Context, taskID, userID string) (*model.TaskUserRelation, error) {
	tid, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	uid, err := requireID("userId", userID)
	if err != nil {
		return nil, err
	}
	body := map[string]string{"taskId": tid, "userId": uid}

	var rel model.TaskUserRelation
	if err := s.client.Post(ctx, pathf("/tasks/%s/followers", tid), body, &rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

func (s *taskService) DeleteTaskHelper(ctx context.Context, taskID, taskHelperID string) error {
	tid, err := requireID("taskId", taskID)
	if err != nil {
		return err
	}
	hid, err := requireID("taskHelperId", taskHelperID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/tasks/%s/followers/%s", tid, hid), nil, nil)
}

func (s *taskService) ListTaskAudits(ctx context.Context, taskID string) ([]model.TaskAudit, error) {
	id, err := requireID("taskId", taskID)
	if err != nil {
		return nil, err
	}
	var audits []model.TaskAudit
	if err := s.client.Get(ctx, pathf("/tasks/%s/audits", id), nil, &audits); err != nil {
		return nil, err
	}
	return audits, nil
}

func taskQuery(q model.TaskQuery, paged bool) (url.Values, error) {
	query := url.Values{}
	if paged {
		query = pageQuery(q.Page, q.Size)
	}
	mode, err := sortMode(q.SortByMode)
	if err != nil {
		return nil, err
	}
	setIfNotBlank(query, "sortByMode", mode)
	setIfNotBlank(query, "taskName", q.TaskName)
	setIfNotBlank(query, "taskStatus", q.TaskStatus)
	setIfNotBlank(query, "taskPriority", q.TaskPriority)
	setIfNotBlank(query, "startDueTime", normalizeDate(q.StartDueTime))
	setIfNotBlank(query, "EndDueTime", normalizeDate(q.EndDueTime))
	setIfNotBlank(query, "taskGroupId", strings.Join(sanitizer.NormalizeIDs(q.TaskGroupIDs), ","))
	if q.RelatedToMe != nil {
		query.Set("relatedToMe", strconv.FormatBool(*q.RelatedToMe))
	}
	return query, nil
}

// sortMode maps "byPriority" to 1 and passes numeric modes through.
func sortMode(mode string) (string, error) {
	mode = validation.Trim(mode)
	switch mode {
	case "":
		return "", nil
	case SortByPriority:
		return "1", nil
	}
	n, ok := validation.ToInt(mode)
	if !ok {
		return "", invalid("sortByMode", "sortByMode must be %q or a number, got %q", SortByPriority, mode)
	}
	return strconv.Itoa(n), nil
}

// normalizeDate returns the YYYY-MM-DD form of v, or v trimmed when it does
// not parse so that validation can report it.
func normalizeDate(v string) string {
	if date, ok := validation.NormalizeLocalDate(v); ok {
		return date
	}
	return validation.Trim(v)
}

func datePtrOrNil(v string) *string {
	date, ok := validation.NormalizeLocalDate(v)
	if !ok {
		return nil
	}
	return &date
}
