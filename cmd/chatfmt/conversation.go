package main

import (
	stderrors "errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/chatseg/chat"
	"github.com/kbukum/chatseg/errors"
)

// conversationFile is the mapping form of a conversation document. A bare
// sequence of messages is accepted as well. JSON input parses as YAML.
type conversationFile struct {
	Messages chat.Conversation `yaml:"messages"`
}

// readConversation decodes a conversation and normalizes its roles.
func readConversation(r io.Reader) (chat.Conversation, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return nil, errors.InvalidConversation("conversation has no messages")
		}
		return nil, errors.MalformedInput("cannot parse conversation").WithCause(err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	var msgs chat.Conversation
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&msgs); err != nil {
			return nil, errors.MalformedInput("cannot parse messages").WithCause(err)
		}
	case yaml.MappingNode:
		var file conversationFile
		if err := root.Decode(&file); err != nil {
			return nil, errors.MalformedInput("cannot parse messages").WithCause(err)
		}
		msgs = file.Messages
	default:
		return nil, errors.MalformedInput("conversation must be a list of messages or a mapping with a messages key")
	}

	for i := range msgs {
		role, err := chat.ParseRole(string(msgs[i].Role))
		if err != nil {
			return nil, err
		}
		msgs[i].Role = role
	}
	return msgs, nil
}
