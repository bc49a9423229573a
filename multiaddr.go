package multiaddr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net"
)

// Multiaddr 是自描述的网络地址接口
type Multiaddr interface {
	// Bytes 返回二进制表示（不要修改返回的字节，可能是共享的）
	Bytes() []byte

	// String 返回字符串表示
	String() string

	// Equal 判断两个地址是否相等
	Equal(Multiaddr) bool

	// Protocols 返回地址包含的协议列表
	Protocols() []Protocol

	// Encapsulate 封装另一个地址
	Encapsulate(Multiaddr) Multiaddr

	// Decapsulate 解封装（移除匹配的后缀）
	Decapsulate(Multiaddr) Multiaddr

	// ValueForProtocol 获取指定协议代码的值
	ValueForProtocol(code int) (string, error)

	// ToTCPAddr 转换为 TCP 地址
	ToTCPAddr() (*net.TCPAddr, error)

	// ToUDPAddr 转换为 UDP 地址
	ToUDPAddr() (*net.UDPAddr, error)
}

// multiaddr 是 Multiaddr 接口的实现
type multiaddr struct {
	bytes []byte
}

// NewMultiaddr 从字符串创建多地址
//
// 解析失败时返回 *StringParseError。
func NewMultiaddr(s string) (Multiaddr, error) {
	b, err := DefaultRegistry.StringToBytes(s)
	if err != nil {
		return nil, err
	}
	return &multiaddr{bytes: b}, nil
}

// NewMultiaddrBytes 从字节创建多地址
//
// 解析失败时返回 *BinaryParseError。
func NewMultiaddrBytes(b []byte) (Multiaddr, error) {
	if err := DefaultRegistry.Validate(b); err != nil {
		return nil, err
	}
	// 复制一份避免外部修改
	buf := make([]byte, len(b))
	copy(buf, b)
	return &multiaddr{bytes: buf}, nil
}

// Cast 从字节强制创建多地址（不验证）
// 警告：仅用于已知有效的地址
func Cast(b []byte) Multiaddr {
	return &multiaddr{bytes: b}
}

// Bytes 返回二进制表示
func (m *multiaddr) Bytes() []byte {
	return m.bytes
}

// String 返回字符串表示
func (m *multiaddr) String() string {
	s, err := DefaultRegistry.BytesToString(m.bytes)
	if err != nil {
		// 构造时已验证，这里不应该发生
		panic(fmt.Errorf("multiaddr failed to convert to string: %w", err))
	}
	return s
}

// Equal 判断两个地址是否相等
func (m *multiaddr) Equal(other Multiaddr) bool {
	if other == nil {
		return false
	}
	return bytes.Equal(m.bytes, other.Bytes())
}

// Protocols 返回地址包含的协议列表
func (m *multiaddr) Protocols() []Protocol {
	segs, err := DefaultRegistry.Segments(m.bytes)
	if err != nil {
		// 构造时已验证，这里不应该发生
		panic(err)
	}

	ps := make([]Protocol, 0, len(segs))
	for _, seg := range segs {
		ps = append(ps, seg.Protocol)
	}
	return ps
}

// Encapsulate 封装另一个地址
func (m *multiaddr) Encapsulate(other Multiaddr) Multiaddr {
	if other == nil {
		return m
	}

	mb := m.bytes
	ob := other.Bytes()

	result := make([]byte, len(mb)+len(ob))
	copy(result, mb)
	copy(result[len(mb):], ob)

	return &multiaddr{bytes: result}
}

// Decapsulate 解封装（移除匹配的后缀）
func (m *multiaddr) Decapsulate(other Multiaddr) Multiaddr {
	if other == nil {
		return m
	}

	mb := m.bytes
	ob := other.Bytes()

	if len(ob) > len(mb) {
		return m
	}

	if bytes.Equal(mb[len(mb)-len(ob):], ob) {
		return &multiaddr{bytes: mb[:len(mb)-len(ob)]}
	}

	return m
}

// ValueForProtocol 获取指定协议代码的值
//
// 无数据协议返回空字符串；地址中不含该协议时返回包装了
// ErrProtocolNotFound 的错误。
func (m *multiaddr) ValueForProtocol(code int) (string, error) {
	segs, err := DefaultRegistry.Segments(m.bytes)
	if err != nil {
		return "", err
	}

	for _, seg := range segs {
		if seg.Protocol.Code != code {
			continue
		}
		if seg.Protocol.Size == 0 {
			return "", nil
		}
		if seg.Protocol.Transcoder == nil {
			return "", fmt.Errorf("protocol %s: no transcoder registered", seg.Protocol.Name)
		}
		return seg.Protocol.Transcoder.BytesToString(seg.Value)
	}

	return "", fmt.Errorf("%w: code %d not present in multiaddr", ErrProtocolNotFound, code)
}

// MarshalBinary 实现 encoding.BinaryMarshaler
func (m *multiaddr) MarshalBinary() ([]byte, error) {
	return m.Bytes(), nil
}

// UnmarshalBinary 实现 encoding.BinaryUnmarshaler
func (m *multiaddr) UnmarshalBinary(data []byte) error {
	ma, err := NewMultiaddrBytes(data)
	if err != nil {
		return err
	}
	*m = *(ma.(*multiaddr))
	return nil
}

// MarshalText 实现 encoding.TextMarshaler
func (m *multiaddr) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (m *multiaddr) UnmarshalText(data []byte) error {
	ma, err := NewMultiaddr(string(data))
	if err != nil {
		return err
	}
	*m = *(ma.(*multiaddr))
	return nil
}

// MarshalJSON 实现 json.Marshaler
func (m *multiaddr) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 实现 json.Unmarshaler
func (m *multiaddr) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	ma, err := NewMultiaddr(s)
	if err != nil {
		return err
	}
	*m = *(ma.(*multiaddr))
	return nil
}
