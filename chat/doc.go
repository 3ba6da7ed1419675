// Package chat defines the role-tagged message types consumed by the
// templator package.
//
// Only three roles exist: [RoleSystem], [RoleUser] and [RoleAssistant].
// A [Conversation] is a plain ordered slice; callers own it and the
// renderer never mutates it.
package chat
