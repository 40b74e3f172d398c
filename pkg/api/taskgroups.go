package api

import (
	"context"

	"ducktodo/pkg/model"
	"ducktodo/pkg/sanitizer"
	"ducktodo/pkg/validation"
)

const MaxGroupAliasLength = 64

type TaskGroupService interface {
	CreateTaskGroup(ctx context.Context, req model.CreateTaskGroupRequest) (*model.TaskGroup, error)
	UpdateTaskGroup(ctx context.Context, req model.UpdateTaskGroupRequest) (*model.TaskGroup, error)
	DeleteTaskGroup(ctx context.Context, taskGroupID string) error
	SwapTaskGroupOrder(ctx context.Context, req model.SwapTaskGroupOrderRequest) error
	UpdateTaskGroupColor(ctx context.Context, taskGroupID, color string) error
	UpdateTaskGroupAlias(ctx context.Context, taskGroupID, alias string) error
	ListMyTaskGroups(ctx context.Context) ([]model.TaskGroup, error)
	ListTaskGroupMembers(ctx context.Context, taskGroupID string) ([]model.TaskGroupMember, error)
}

type taskGroupService struct {
	deps
}

func newTaskGroupService(d deps) TaskGroupService {
	return &taskGroupService{deps: d}
}

func (s *taskGroupService) CreateTaskGroup(ctx context.Context, req model.CreateTaskGroupRequest) (*model.TaskGroup, error) {
	req.GroupName = sanitizer.NormalizeName(req.GroupName)
	req.GroupDescription = validation.Trim(req.GroupDescription)
	req.GroupColor = validation.Trim(req.GroupColor)

	if err := s.check(req); err != nil {
		return nil, err
	}
	var group model.TaskGroup
	if err := s.client.Post(ctx, "/taskgroups", req, &group); err != nil {
		return nil, err
	}
	s.log.Info("Task group created", "task_group_id", group.TaskGroupID)
	return &group, nil
}

func (s *taskGroupService) UpdateTaskGroup(ctx context.Context, req model.UpdateTaskGroupRequest) (*model.TaskGroup, error) {
	req.TaskGroupID = validation.Trim(req.TaskGroupID)
	req.GroupName = sanitizer.NormalizeName(req.GroupName)
	req.GroupDescription = trimPtr(req.GroupDescription)

	if err := s.check(req); err != nil {
		return nil, err
	}
	var group model.TaskGroup
	if err := s.client.Put(ctx, "/taskgroups", req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

func (s *taskGroupService) DeleteTaskGroup(ctx context.Context, taskGroupID string) error {
	id, err := requireID("taskGroupId", taskGroupID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/taskgroups/%s", id), nil, nil)
}

func (s *taskGroupService) SwapTaskGroupOrder(ctx context.Context, req model.SwapTaskGroupOrderRequest) error {
	req.TaskGroupIDA = validation.Trim(req.TaskGroupIDA)
	req.TaskGroupIDB = validation.Trim(req.TaskGroupIDB)
	if err := s.check(req); err != nil {
		return err
	}
	return s.client.Put(ctx, "/taskgroups/order", req, nil)
}

func (s *taskGroupService) UpdateTaskGroupColor(ctx context.Context, taskGroupID, color string) error {
	id, err := requireID("taskGroupId", taskGroupID)
	if err != nil {
		return err
	}
	color = validation.Trim(color)
	if !validation.IsHexColor(color) {
		return invalid("groupColor", "groupColor must be a color in #xxxxxx form")
	}
	return s.client.Put(ctx, pathf("/taskgroups/%s/members/me/color", id), map[string]string{"groupColor": color}, nil)
}

func (s *taskGroupService) UpdateTaskGroupAlias(ctx context.Context, taskGroupID, alias string) error {
	id, err := requireID("taskGroupId", taskGroupID)
	if err != nil {
		return err
	}
	alias = validation.Trim(alias)
	if alias == "" {
		return invalid("groupAlias", "groupAlias is required")
	}
	if !validation.IsMaxLength(alias, MaxGroupAliasLength) {
		return invalid("groupAlias", "groupAlias must be at most %d characters", MaxGroupAliasLength)
	}
	return s.client.Put(ctx, pathf("/taskgroups/%s/members/me/alias", id), map[string]string{"groupAlias": alias}, nil)
}

func (s *taskGroupService) ListMyTaskGroups(ctx context.Context) ([]model.TaskGroup, error) {
	var groups []model.TaskGroup
	if err := s.client.Get(ctx, "/taskgroups/me", nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (s *taskGroupService) ListTaskGroupMembers(ctx context.Context, taskGroupID string) ([]model.TaskGroupMember, error) {
	id, err := requireID("taskGroupId", taskGroupID)
	if err != nil {
		return nil, err
	}
	var members []model.TaskGroupMember
	if err := s.client.Get(ctx, pathf("/taskgroups/%s/members", id), nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}
