package permission

import (
	"fmt"

	"github.com/systech-labs/deskflow/internal/domain/permission"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// DefaultPolicies returns the role grants a fresh install starts with.
func DefaultPolicies() [][]string {
	admin := authorization.RoleAdmin.String()
	agent := authorization.RoleAgent.String()
	client := authorization.RoleClient.String()

	return [][]string{
		// Admin tier manages everything, including the sprint lifecycle
		{admin, permission.ResourceTicket, permission.ActionAny},
		{admin, permission.ResourceDevTask, permission.ActionAny},
		{admin, permission.ResourceSprint, permission.ActionAny},
		{admin, permission.ResourceProduct, permission.ActionAny},
		{admin, permission.ResourceEscalation, permission.ActionRead},

		// Agents work tickets and tasks but only read sprints
		{agent, permission.ResourceTicket, permission.ActionAny},
		{agent, permission.ResourceDevTask, permission.ActionAny},
		{agent, permission.ResourceSprint, permission.ActionRead},
		{agent, permission.ResourceProduct, permission.ActionRead},
		{agent, permission.ResourceEscalation, permission.ActionRead},

		// Clients only touch their own tickets
		{client, permission.ResourceTicket, permission.ActionRead},
		{client, permission.ResourceTicket, permission.ActionCreate},
		{client, permission.ResourceTicket, permission.ActionUpdate},
	}
}

// DefaultInheritance maps a role to the role whose policies it inherits.
func DefaultInheritance() map[string]string {
	return map[string]string{
		authorization.RoleCompanyAdmin.String(): authorization.RoleAdmin.String(),
	}
}

// SeedDefaults adds the default policies that are not stored yet. Existing
// rows, including ones an operator added, are left alone.
func SeedDefaults(e *Enforcer, log logger.Interface) error {
	added := 0
	for _, p := range DefaultPolicies() {
		e.mu.Lock()
		ok, err := e.enforcer.AddPolicy(p[0], p[1], p[2])
		e.mu.Unlock()
		if err != nil {
			log.Errorw("failed to add default policy",
				"error", err,
				"role", p[0],
				"resource", p[1],
				"action", p[2])
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w", p[0], p[1], p[2], err)
		}
		if ok {
			added++
		}
	}

	for role, parent := range DefaultInheritance() {
		if err := e.AddRoleInheritance(role, parent); err != nil {
			return err
		}
	}

	log.Infow("default permissions seeded", "added", added)
	return nil
}
