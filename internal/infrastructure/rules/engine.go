package rules

import (
	"context"
	"fmt"

	"github.com/google/cel-go/cel"

	"creatorconnect/internal/domain/service"
	"creatorconnect/pkg/errors"
	"creatorconnect/pkg/logger"
)

// DefaultRules are the access rules of the service, keyed by action.
var DefaultRules = map[service.Action]string{
	service.ActionSendRequest:      `auth.uid == request.senderId && request.receiverId != auth.uid`,
	service.ActionDeclineRequest:   `auth.uid in [resource.receiverId, resource.senderId]`,
	service.ActionAcceptRequest:    `auth.uid == resource.receiverId`,
	service.ActionCompleteCollab:   `auth.uid in resource.participantIds`,
	service.ActionRate:             `auth.uid == request.raterId && auth.uid in resource.participantIds && request.ratedUserId in resource.participantIds && request.ratedUserId != auth.uid`,
	service.ActionReadNotification: `auth.uid == resource.userId`,
	service.ActionAccessChat:       `auth.uid in resource.participants`,
	service.ActionAdmin:            `auth.role == "admin"`,
}

type Engine struct {
	programs map[service.Action]cel.Program
}

// NewEngine compiles every rule up front; an action without a rule is denied.
func NewEngine(rules map[service.Action]string) (*Engine, error) {
	env, err := cel.NewEnv(
		cel.Variable("auth", cel.DynType),
		cel.Variable("resource", cel.DynType),
		cel.Variable("request", cel.DynType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	programs := make(map[service.Action]cel.Program, len(rules))
	for action, expr := range rules {
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %s: CEL compilation error: %w", action, issues.Err())
		}
		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %s: failed to create CEL program: %w", action, err)
		}
		programs[action] = program
	}

	return &Engine{programs: programs}, nil
}

func (e *Engine) Authorize(ctx context.Context, action service.Action, req service.AccessRequest) error {
	program, ok := e.programs[action]
	if !ok {
		return errors.Forbidden(fmt.Sprintf("No access rule for %s", action), nil)
	}

	vars := map[string]interface{}{
		"auth": map[string]interface{}{
			"uid":   req.Principal.UID,
			"email": req.Principal.Email,
			"role":  req.Principal.Role,
		},
		"resource": orEmpty(req.Resource),
		"request":  orEmpty(req.Request),
	}

	out, _, err := program.ContextEval(ctx, vars)
	if err != nil {
		// Missing keys surface as evaluation errors; treat them as a denial.
		logger.Debug("Access rule %s failed to evaluate for %s: %v", action, req.Principal.UID, err)
		return errors.Forbidden("You are not allowed to perform this action", err)
	}

	allowed, ok := out.Value().(bool)
	if !ok || !allowed {
		return errors.Forbidden("You are not allowed to perform this action", nil)
	}
	return nil
}

func orEmpty(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	return m
}
