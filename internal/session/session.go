package session

import (
	"fmt"
	"strings"

	"tendercv/internal"
)

// Mode is the job-title assignment mode for one editing session.
type Mode string

const (
	ModeExistingTitles Mode = "existing"
	ModeAssignRoles    Mode = "assign_roles"
)

// CustomTitle is the sentinel a caller picks to store a free-text title while
// in assign-roles mode. The supplementary value is stored verbatim and is not
// appended to the role list.
const CustomTitle = "Custom"

// ConfigError marks configuration misuse: the only error class the core
// rejects outright instead of degrading. Everything else (unparsable dates,
// empty pools) reduces information rather than failing.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// Session is the process-wide mutable state owned by the surrounding
// interactive layer: the defined roles and the job-title mode. Core functions
// receive it read-only per call.
type Session struct {
	Mode  Mode
	Roles []internal.RoleDefinition
}

func New() *Session {
	return &Session{Mode: ModeExistingTitles}
}

// AddRole registers a role definition. Names are unique case-insensitively;
// a collision is a ConfigError.
func (s *Session) AddRole(role internal.RoleDefinition) error {
	name := strings.TrimSpace(role.Name)
	if name == "" {
		return &ConfigError{Reason: "role name is required"}
	}
	if role.RequiredCount <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("role %q: required count must be positive", name)}
	}
	if role.MinimumExperience < 0 {
		return &ConfigError{Reason: fmt.Sprintf("role %q: minimum experience cannot be negative", name)}
	}
	if s.RoleByName(name) != nil {
		return &ConfigError{Reason: fmt.Sprintf("role %q already defined", name)}
	}
	role.Name = name
	if role.Mode == "" {
		role.Mode = internal.MatchContains
	}
	s.Roles = append(s.Roles, role)
	return nil
}

func (s *Session) RoleByName(name string) *internal.RoleDefinition {
	for i := range s.Roles {
		if strings.EqualFold(s.Roles[i].Name, strings.TrimSpace(name)) {
			return &s.Roles[i]
		}
	}
	return nil
}

func (s *Session) RemoveRole(name string) error {
	for i := range s.Roles {
		if strings.EqualFold(s.Roles[i].Name, strings.TrimSpace(name)) {
			s.Roles = append(s.Roles[:i], s.Roles[i+1:]...)
			return nil
		}
	}
	return &ConfigError{Reason: fmt.Sprintf("role %q not defined", name)}
}

func (s *Session) ClearRoles() {
	s.Roles = nil
}

// BeginAssigningRoles switches to assign-roles mode. The transition is
// destructive: every job title in the collection is cleared. It is refused
// when no roles are defined. Only the actual transition clears; calling this
// while already in assign-roles mode leaves every title alone. The input
// slice is not modified; the returned copy carries the result.
func (s *Session) BeginAssigningRoles(personnel []internal.PersonnelRecord) ([]internal.PersonnelRecord, error) {
	if len(s.Roles) == 0 {
		return nil, &ConfigError{Reason: "cannot switch to assign-roles mode with zero defined roles"}
	}
	out := make([]internal.PersonnelRecord, len(personnel))
	copy(out, personnel)
	if s.Mode != ModeAssignRoles {
		for i := range out {
			out[i].JobTitle = ""
		}
	}
	s.Mode = ModeAssignRoles
	return out, nil
}

// UseExistingTitles switches back without touching titles: role-assigned
// values survive as free text. Role definitions persist across transitions in
// either direction.
func (s *Session) UseExistingTitles() {
	s.Mode = ModeExistingTitles
}

// ResolveTitleEdit validates a job-title edit under the current mode and
// returns the value to store. In assign-roles mode the title must be a
// defined role name, or CustomTitle with a non-empty free-text value.
func (s *Session) ResolveTitleEdit(title, custom string) (string, error) {
	title = strings.TrimSpace(title)
	if s.Mode != ModeAssignRoles {
		return title, nil
	}
	if title == CustomTitle {
		custom = strings.TrimSpace(custom)
		if custom == "" {
			return "", &ConfigError{Reason: "custom job title requires a value"}
		}
		return custom, nil
	}
	if role := s.RoleByName(title); role != nil {
		return role.Name, nil
	}
	return "", &ConfigError{Reason: fmt.Sprintf("job title %q is not a defined role", title)}
}
