package lsp

import (
	"sync"

	"go.lsp.dev/uri"
)

// Document 打开的文档
type Document struct {
	Text    string // 完整内容（全量同步）
	Version int    // 客户端版本号
}

// documentStore 打开文档的集合
type documentStore struct {
	mu   sync.RWMutex
	docs map[uri.URI]*Document
}

func newDocumentStore() *documentStore {
	return &documentStore{
		docs: make(map[uri.URI]*Document),
	}
}

// Open 记录打开的文档
func (s *documentStore) Open(docURI uri.URI, text string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[docURI] = &Document{Text: text, Version: version}
}

// Update 更新文档内容
func (s *documentStore) Update(docURI uri.URI, text string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if doc, ok := s.docs[docURI]; ok {
		doc.Text = text
		doc.Version = version
		return
	}
	s.docs[docURI] = &Document{Text: text, Version: version}
}

// Close 移除关闭的文档
func (s *documentStore) Close(docURI uri.URI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, docURI)
}

// Get 获取文档，不存在时返回 nil
func (s *documentStore) Get(docURI uri.URI) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[docURI]
}
