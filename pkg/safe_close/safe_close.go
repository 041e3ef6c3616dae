// Package safe_close coordinates graceful shutdown of multiple goroutines.
// Package safe_close 协调多个 goroutine 的优雅关闭
package safe_close

import "sync"

// SafeClose fans a single close signal out to every attached goroutine and
// waits until all of them report done.
type SafeClose struct {
	mu          sync.Mutex
	closed      bool
	closeSignal chan struct{}
	closeErr    error
	wg          sync.WaitGroup
}

func NewSafeClose() *SafeClose {
	return &SafeClose{
		closeSignal: make(chan struct{}),
	}
}

// Attach runs f in a new goroutine. f must call done() when it has finished
// its cleanup, and should start that cleanup when closeSignal is closed.
// Attach 在新 goroutine 中运行 f。f 完成清理后必须调用 done()，
// closeSignal 关闭时应开始清理。
func (s *SafeClose) Attach(f func(done func(), closeSignal <-chan struct{})) {
	s.wg.Add(1)
	var once sync.Once
	done := func() {
		once.Do(s.wg.Done)
	}
	go f(done, s.closeSignal)
}

// SendCloseSignal closes the signal channel. The first error passed in is
// kept and returned by WaitClosed; later calls are no-ops.
// SendCloseSignal 关闭信号通道。首个错误被保留并由 WaitClosed 返回，
// 后续调用为空操作。
func (s *SafeClose) SendCloseSignal(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.closeErr = err
	close(s.closeSignal)
}

// CloseSignal exposes the signal channel for select loops.
func (s *SafeClose) CloseSignal() <-chan struct{} {
	return s.closeSignal
}

// WaitClosed blocks until every attached goroutine has called done.
// WaitClosed 阻塞直到所有已附加的 goroutine 调用 done
func (s *SafeClose) WaitClosed() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}
