package api

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"ducktodo/pkg/model"
	"ducktodo/pkg/sanitizer"
	"ducktodo/pkg/validation"
)

const DefaultInviteMemberStatus = "2"

var memberRoleFilters = map[string]bool{
	"owner": true, "manager": true, "member": true,
	"0": true, "1": true, "2": true, "3": true,
}

type TeamService interface {
	CreateTeam(ctx context.Context, req model.CreateTeamRequest) (*model.Team, error)
	InviteTeamMember(ctx context.Context, req model.InviteMemberRequest) error
	AcceptInvite(ctx context.Context, teamID string) error
	RejectInvite(ctx context.Context, teamID string) error
	DeleteTeam(ctx context.Context, teamID string) error
	LeaveTeam(ctx context.Context, teamID string) error
	DeleteTeamMember(ctx context.Context, teamID, userID string) error
	UpdateTeam(ctx context.Context, req model.UpdateTeamRequest) (*model.Team, error)
	UpdateMemberRole(ctx context.Context, req model.UpdateMemberRoleRequest) error
	SwapTeamOrder(ctx context.Context, req model.SwapTeamOrderRequest) error
	UpdateTeamColor(ctx context.Context, teamID, color string) error
	MyInvitePage(ctx context.Context, q model.InviteQuery) (*model.Page[model.Team], error)
	ListMyTeams(ctx context.Context) ([]model.Team, error)
	GetTeam(ctx context.Context, teamID string) (*model.Team, error)
	GetTeamDashboard(ctx context.Context, teamID string) (json.RawMessage, error)
	TeamMemberPage(ctx context.Context, teamID string, q model.TeamMemberQuery) (*model.Page[model.TeamMember], error)
}

type teamService struct {
	deps
}

func newTeamService(d deps) TeamService {
	return &teamService{deps: d}
}

// CreateTeam drops invited members without a user id; the rest must carry a
// manager or member role.
func (s *teamService) CreateTeam(ctx context.Context, req model.CreateTeamRequest) (*model.Team, error) {
	req.TeamName = sanitizer.NormalizeName(req.TeamName)
	req.TeamDescription = validation.Trim(req.TeamDescription)
	req.TeamAvatar = validation.Trim(req.TeamAvatar)

	members := make([]model.InvitedMember, 0, len(req.InvitedMemberList))
	for _, m := range req.InvitedMemberList {
		m.UserID = validation.Trim(m.UserID)
		if m.UserID == "" {
			continue
		}
		members = append(members, m)
	}
	req.InvitedMemberList = members

	if err := s.check(req); err != nil {
		return nil, err
	}
	var team model.Team
	if err := s.client.Post(ctx, "/teams", req, &team); err != nil {
		return nil, err
	}
	s.log.Info("Team created", "team_id", team.TeamID, "invited", len(members))
	return &team, nil
}

func (s *teamService) InviteTeamMember(ctx context.Context, req model.InviteMemberRequest) error {
	req.TeamID = validation.Trim(req.TeamID)
	req.UserID = validation.Trim(req.UserID)
	if err := s.check(req); err != nil {
		return err
	}
	return s.client.Post(ctx, pathf("/teams/%s/members", req.TeamID), req, nil)
}

func (s *teamService) AcceptInvite(ctx context.Context, teamID string) error {
	return s.answerInvite(ctx, teamID, "accept")
}

func (s *teamService) RejectInvite(ctx context.Context, teamID string) error {
	return s.answerInvite(ctx, teamID, "reject")
}

func (s *teamService) answerInvite(ctx context.Context, teamID, answer string) error {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return err
	}
	return s.client.Put(ctx, pathf("/teams/%s/invites/me/", id)+answer, nil, nil)
}

func (s *teamService) DeleteTeam(ctx context.Context, teamID string) error {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/teams/%s", id), nil, nil)
}

func (s *teamService) LeaveTeam(ctx context.Context, teamID string) error {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/teams/%s/members/me", id), nil, nil)
}

func (s *teamService) DeleteTeamMember(ctx context.Context, teamID, userID string) error {
	tid, err := requireID("teamId", teamID)
	if err != nil {
		return err
	}
	uid, err := requireID("userId", userID)
	if err != nil {
		return err
	}
	return s.client.Delete(ctx, pathf("/teams/%s/members/%s", tid, uid), nil, nil)
}

func (s *teamService) UpdateTeam(ctx context.Context, req model.UpdateTeamRequest) (*model.Team, error) {
	req.TeamID = validation.Trim(req.TeamID)
	req.TeamName = sanitizer.NormalizeName(req.TeamName)
	req.TeamDescription = trimPtr(req.TeamDescription)
	if err := s.check(req); err != nil {
		return nil, err
	}
	var team model.Team
	if err := s.client.Put(ctx, "/teams", req, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *teamService) UpdateMemberRole(ctx context.Context, req model.UpdateMemberRoleRequest) error {
	req.TeamID = validation.Trim(req.TeamID)
	req.UserID = validation.Trim(req.UserID)
	if err := s.check(req); err != nil {
		return err
	}
	return s.client.Put(ctx, pathf("/teams/%s/members/%s/role", req.TeamID, req.UserID), req, nil)
}

func (s *teamService) SwapTeamOrder(ctx context.Context, req model.SwapTeamOrderRequest) error {
	req.TeamIDA = validation.Trim(req.TeamIDA)
	req.TeamIDB = validation.Trim(req.TeamIDB)
	if err := s.check(req); err != nil {
		return err
	}
	return s.client.Put(ctx, "/teams/order", req, nil)
}

func (s *teamService) UpdateTeamColor(ctx context.Context, teamID, color string) error {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return err
	}
	color = validation.Trim(color)
	if !validation.IsHexColor(color) {
		return invalid("teamColor", "teamColor must be a color in #xxxxxx form")
	}
	return s.client.Put(ctx, pathf("/teams/%s/members/me/color", id), map[string]string{"teamColor": color}, nil)
}

func (s *teamService) MyInvitePage(ctx context.Context, q model.InviteQuery) (*model.Page[model.Team], error) {
	query := pageQuery(q.Page, q.Size)
	status := validation.Trim(q.MemberStatus)
	if status == "" {
		status = DefaultInviteMemberStatus
	}
	query.Set("memberStatus", status)
	setIfNotBlank(query, "teamName", q.TeamName)

	var page model.Page[model.Team]
	if err := s.client.Get(ctx, "/teams/me/invites", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (s *teamService) ListMyTeams(ctx context.Context) ([]model.Team, error) {
	var teams []model.Team
	if err := s.client.Get(ctx, "/teams/me", nil, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *teamService) GetTeam(ctx context.Context, teamID string) (*model.Team, error) {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return nil, err
	}
	var team model.Team
	if err := s.client.Get(ctx, pathf("/teams/%s", id), nil, &team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *teamService) GetTeamDashboard(ctx context.Context, teamID string) (json.RawMessage, error) {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return nil, err
	}
	var dashboard json.RawMessage
	if err := s.client.Get(ctx, pathf("/teams/%s/dashboard", id), nil, &dashboard); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// TeamMemberPage ignores an unknown memberRole filter instead of rejecting it.
func (s *teamService) TeamMemberPage(ctx context.Context, teamID string, q model.TeamMemberQuery) (*model.Page[model.TeamMember], error) {
	id, err := requireID("teamId", teamID)
	if err != nil {
		return nil, err
	}
	query := pageQuery(q.Page, q.Size)
	setIfNotBlank(query, "userName", q.UserName)
	if role := strings.ToLower(validation.Trim(q.MemberRole)); memberRoleFilters[role] {
		query.Set("memberRole", role)
	}
	if q.UserStatus != nil {
		query.Set("userStatus", strconv.Itoa(*q.UserStatus))
	}
	if q.Invited != nil {
		query.Set("invited", strconv.FormatBool(*q.Invited))
	}

	var page model.Page[model.TeamMember]
	if err := s.client.Get(ctx, pathf("/teams/%s/members", id), query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
