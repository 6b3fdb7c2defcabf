// Package lsp 实现 Seanet 语言服务器
//
// 功能集中在诊断：文档打开、变更、保存时重新扫描和解析，
// 通过 textDocument/publishDiagnostics 推送结果。
// 与编辑器通过标准输入输出 (stdio) 通信。
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
	"go.uber.org/zap"
)

// Server LSP 服务器
type Server struct {
	documents *documentStore
	logger    *zap.SugaredLogger

	// 工作区信息
	workspaceRoot string

	// 输入输出
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex

	// 服务器状态
	initialized bool
	shutdown    bool
}

// NewServer 创建 LSP 服务器
func NewServer(logPath string) (*Server, error) {
	logger, err := newLogger(logPath)
	if err != nil {
		return nil, fmt.Errorf("lsp: failed to create logger: %w", err)
	}

	return &Server{
		documents: newDocumentStore(),
		logger:    logger,
		reader:    bufio.NewReader(os.Stdin),
		writer:    os.Stdout,
	}, nil
}

// Run 启动 LSP 服务器主循环
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Seanet language server started")
	defer s.logger.Sync()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// 读取消息
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("client disconnected")
				return nil
			}
			s.logger.Errorf("error reading message: %v", err)
			continue
		}

		// 处理消息
		s.handleMessage(msg)

		// 收到 exit 通知后退出
		if s.shutdown {
			s.logger.Info("server shutdown")
			return nil
		}
	}
}

// readMessage 读取一条 LSP 消息
func (s *Server) readMessage() ([]byte, error) {
	// 读取头部
	var contentLength int
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)

		if line == "" {
			// 头部结束
			break
		}

		if strings.HasPrefix(line, "Content-Length:") {
			lengthStr := strings.TrimSpace(strings.TrimPrefix(line, "Content-Length:"))
			contentLength, err = strconv.Atoi(lengthStr)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %s", lengthStr)
			}
		}
	}

	if contentLength == 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}

	// 读取内容
	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, content); err != nil {
		return nil, err
	}

	s.logger.Debugf("received message: %d bytes", contentLength)
	return content, nil
}

// sendMessage 发送一条 LSP 消息
func (s *Server) sendMessage(msg interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))

	if _, err := s.writer.Write([]byte(header)); err != nil {
		return err
	}
	_, err = s.writer.Write(content)
	return err
}

// handleMessage 处理收到的消息
func (s *Server) handleMessage(msg []byte) {
	// 解析基础消息结构
	var baseMsg struct {
		JSONRPC string          `json:"jsonrpc"`
		ID      json.RawMessage `json:"id,omitempty"`
		Method  string          `json:"method"`
		Params  json.RawMessage `json:"params,omitempty"`
	}

	if err := json.Unmarshal(msg, &baseMsg); err != nil {
		s.logger.Errorf("error parsing message: %v", err)
		return
	}

	s.logger.Debugf("handling method: %s", baseMsg.Method)

	// 根据方法分发处理
	switch baseMsg.Method {
	case "initialize":
		s.handleInitialize(baseMsg.ID, baseMsg.Params)
	case "initialized":
		s.handleInitialized()
	case "shutdown":
		s.handleShutdown(baseMsg.ID)
	case "exit":
		s.handleExit()
	case "textDocument/didOpen":
		s.handleDidOpen(baseMsg.Params)
	case "textDocument/didChange":
		s.handleDidChange(baseMsg.Params)
	case "textDocument/didClose":
		s.handleDidClose(baseMsg.Params)
	case "textDocument/didSave":
		s.handleDidSave(baseMsg.Params)
	default:
		s.logger.Debugf("unhandled method: %s", baseMsg.Method)
		// 请求（有 ID）必须回应，通知直接忽略
		if baseMsg.ID != nil {
			s.sendError(baseMsg.ID, -32601, "Method not found: "+baseMsg.Method)
		}
	}
}

// handleInitialize 处理初始化请求
func (s *Server) handleInitialize(id json.RawMessage, params json.RawMessage) {
	var initParams protocol.InitializeParams
	if err := json.Unmarshal(params, &initParams); err != nil {
		s.sendError(id, -32700, "Parse error")
		return
	}

	if initParams.RootURI != "" {
		s.workspaceRoot = string(initParams.RootURI)
	}

	s.logger.Infof("initialize: workspace=%s", s.workspaceRoot)

	// 返回服务器能力
	result := map[string]interface{}{
		"capabilities": map[string]interface{}{
			// 文档同步：完整同步
			"textDocumentSync": map[string]interface{}{
				"openClose": true,
				"change":    1, // Full sync
				"save": map[string]interface{}{
					"includeText": true,
				},
			},
		},
		"serverInfo": map[string]interface{}{
			"name":    "seanetls",
			"version": "0.1.0",
		},
	}

	s.sendResult(id, result)
}

// handleInitialized 处理初始化完成通知
func (s *Server) handleInitialized() {
	s.initialized = true
	s.logger.Info("server initialized")
}

// handleShutdown 处理关闭请求
func (s *Server) handleShutdown(id json.RawMessage) {
	s.logger.Info("shutdown requested")
	s.sendResult(id, nil)
}

// handleExit 处理退出通知
func (s *Server) handleExit() {
	s.shutdown = true
	s.logger.Info("exit notification received")
}

// handleDidOpen 处理文档打开
func (s *Server) handleDidOpen(params json.RawMessage) {
	var p protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Errorf("error parsing didOpen params: %v", err)
		return
	}

	docURI := p.TextDocument.URI
	s.documents.Open(docURI, p.TextDocument.Text, int(p.TextDocument.Version))
	s.publishDiagnostics(docURI)
}

// handleDidChange 处理文档变更
func (s *Server) handleDidChange(params json.RawMessage) {
	var p protocol.DidChangeTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Errorf("error parsing didChange params: %v", err)
		return
	}

	docURI := p.TextDocument.URI

	// 完整同步：使用第一个变更的文本内容
	if len(p.ContentChanges) > 0 {
		s.documents.Update(docURI, p.ContentChanges[0].Text, int(p.TextDocument.Version))
		s.publishDiagnostics(docURI)
	}
}

// handleDidClose 处理文档关闭
func (s *Server) handleDidClose(params json.RawMessage) {
	var p protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Errorf("error parsing didClose params: %v", err)
		return
	}

	docURI := p.TextDocument.URI
	s.documents.Close(docURI)

	// 关闭时清空该文档的诊断
	s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Diagnostics: []protocol.Diagnostic{},
	})
}

// handleDidSave 处理文档保存
func (s *Server) handleDidSave(params json.RawMessage) {
	var p protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(params, &p); err != nil {
		s.logger.Errorf("error parsing didSave params: %v", err)
		return
	}

	docURI := p.TextDocument.URI
	s.logger.Debugf("document saved: %s", docURI)

	// 如果包含文本，更新文档
	if p.Text != "" {
		if doc := s.documents.Get(docURI); doc != nil {
			s.documents.Update(docURI, p.Text, doc.Version+1)
		}
	}
	s.publishDiagnostics(docURI)
}

// publishDiagnostics 重新分析文档并推送诊断
func (s *Server) publishDiagnostics(docURI uri.URI) {
	doc := s.documents.Get(docURI)
	if doc == nil {
		return
	}

	diagnostics := analyze(docURI, doc.Text)
	s.logger.Debugf("publishing %d diagnostics for %s", len(diagnostics), docURI)

	s.sendNotification("textDocument/publishDiagnostics", protocol.PublishDiagnosticsParams{
		URI:         docURI,
		Version:     uint32(doc.Version),
		Diagnostics: diagnostics,
	})
}

// sendResult 发送成功响应
func (s *Server) sendResult(id json.RawMessage, result interface{}) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	s.sendMessage(response)
}

// sendError 发送错误响应
func (s *Server) sendError(id json.RawMessage, code int, message string) {
	response := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    code,
			"message": message,
		},
	}
	s.sendMessage(response)
}

// sendNotification 发送通知
func (s *Server) sendNotification(method string, params interface{}) {
	notification := map[string]interface{}{
		"jsonrpc": "2.0",
		"method":  method,
		"params":  params,
	}
	s.sendMessage(notification)
}
