package sock

// FakeSocket is a scripted Socket for engine tests: the test sets the
// observable status and inbound bytes, the fake records every call.
type FakeSocket struct {
	Current Status
	Inbound []byte

	Sent        [][]byte
	OpenCalls   int
	ListenCalls int
	Disconnects int
	CloseCalls  int

	OpenErr   error
	ListenErr error
	RecvErr   error
	SendErr   error
}

func (f *FakeSocket) Status() Status { return f.Current }

func (f *FakeSocket) Open() error {
	f.OpenCalls++
	if f.OpenErr != nil {
		return f.OpenErr
	}
	f.Current = StatusInit
	return nil
}

func (f *FakeSocket) Listen() error {
	f.ListenCalls++
	return f.ListenErr
}

func (f *FakeSocket) Available() int { return len(f.Inbound) }

func (f *FakeSocket) Recv(buf []byte) (int, error) {
	if f.RecvErr != nil {
		return 0, f.RecvErr
	}
	n := copy(buf, f.Inbound)
	f.Inbound = f.Inbound[n:]
	return n, nil
}

func (f *FakeSocket) Send(data []byte) error {
	if f.SendErr != nil {
		return f.SendErr
	}
	sent := make([]byte, len(data))
	copy(sent, data)
	f.Sent = append(f.Sent, sent)
	return nil
}

func (f *FakeSocket) Disconnect() error {
	f.Disconnects++
	f.Current = StatusClosed
	f.Inbound = nil
	return nil
}

func (f *FakeSocket) Close() error {
	f.CloseCalls++
	f.Current = StatusClosed
	f.Inbound = nil
	return nil
}
