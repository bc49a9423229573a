package multiaddr

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/multiformats/go-varint"
)

// Segment 是二进制多地址中的一个段
//
// 仅在迭代缓冲区时产生，不做持久化。Value 引用原缓冲区，
// 不含协议代码和长度前缀。
type Segment struct {
	// Offset 段（协议代码的 varint）在缓冲区中的起始偏移
	Offset int

	// Protocol 段对应的协议
	Protocol Protocol

	// Value 原始值字节
	Value []byte
}

// StringToBytes 将多地址字符串转换为二进制格式
//
// 任何底层编解码失败都以 *StringParseError 返回。
func (r *Registry) StringToBytes(s string) ([]byte, error) {
	// 去除尾部斜杠
	trimmed := strings.TrimRight(s, "/")

	if !strings.HasPrefix(trimmed, "/") {
		return nil, &StringParseError{Addr: s, Err: errors.New("multiaddr must begin with /")}
	}

	// 跳过第一个空元素
	parts := strings.Split(trimmed, "/")[1:]
	if len(parts) == 0 || parts[0] == "" {
		return nil, &StringParseError{Addr: s, Err: errors.New("empty multiaddr")}
	}

	var buf bytes.Buffer

	// 逐对消费 (协议名, 值)
	for len(parts) > 0 {
		name := parts[0]
		proto, err := r.FindByName(name)
		if err != nil {
			return nil, &StringParseError{Addr: s, Protocol: name, Err: err}
		}

		// 写入协议代码（varint）
		buf.Write(proto.VCode)
		parts = parts[1:]

		// 无数据协议没有值部分
		if proto.Size == 0 {
			continue
		}

		if len(parts) < 1 {
			return nil, &StringParseError{Addr: s, Protocol: proto.Name, Err: errors.New("protocol requires a value")}
		}

		// 路径协议消费剩余所有部分
		if proto.Path {
			parts = []string{"/" + strings.Join(parts, "/")}
		}

		if proto.Transcoder == nil {
			return nil, &StringParseError{Addr: s, Protocol: proto.Name, Err: errors.New("no transcoder registered")}
		}
		value, err := proto.Transcoder.StringToBytes(parts[0])
		if err != nil {
			return nil, &StringParseError{Addr: s, Protocol: proto.Name, Err: err}
		}

		// 变长协议写入长度前缀
		if proto.Size == LengthPrefixedVarSize {
			buf.Write(varint.ToUvarint(uint64(len(value))))
		}

		buf.Write(value)
		parts = parts[1:]
	}

	return buf.Bytes(), nil
}

// Segments 将二进制缓冲区切分为连续的段
//
// 游标每轮严格前进；段越过缓冲区末尾、未知协议代码或损坏的
// varint 都以 *BinaryParseError 返回。成功时游标恰好到达末尾。
func (r *Registry) Segments(b []byte) ([]Segment, error) {
	if len(b) == 0 {
		return nil, &BinaryParseError{Bytes: b, Err: errors.New("empty multiaddr")}
	}

	var segs []Segment
	offset := 0

	for offset < len(b) {
		start := offset

		// 读取协议代码
		code, n, err := ReadVarintCode(b[offset:])
		if err != nil {
			return nil, &BinaryParseError{Bytes: b, Offset: start, Err: err}
		}
		offset += n

		proto, err := r.FindByCode(code)
		if err != nil {
			return nil, &BinaryParseError{Bytes: b, Offset: start, Err: err}
		}

		// 解析段大小
		prefix, size, err := sizeForAddr(proto, b[offset:])
		if err != nil {
			return nil, &BinaryParseError{Bytes: b, Offset: start, Protocol: proto.Name, Err: err}
		}
		offset += prefix

		if size > len(b)-offset {
			return nil, &BinaryParseError{
				Bytes:    b,
				Offset:   start,
				Protocol: proto.Name,
				Err:      fmt.Errorf("segment extends past buffer end: need %d bytes, have %d", size, len(b)-offset),
			}
		}

		segs = append(segs, Segment{
			Offset:   start,
			Protocol: proto,
			Value:    b[offset : offset+size],
		})
		offset += size
	}

	return segs, nil
}

// BytesToString 将二进制格式的多地址转换为字符串
//
// 任何底层编解码失败都以 *BinaryParseError 返回。
func (r *Registry) BytesToString(b []byte) (string, error) {
	segs, err := r.Segments(b)
	if err != nil {
		return "", err
	}

	var sb strings.Builder

	for _, seg := range segs {
		sb.WriteString("/")
		sb.WriteString(seg.Protocol.Name)

		if seg.Protocol.Size == 0 {
			continue
		}

		if seg.Protocol.Transcoder == nil {
			return "", &BinaryParseError{Bytes: b, Offset: seg.Offset, Protocol: seg.Protocol.Name, Err: errors.New("no transcoder registered")}
		}
		value, err := seg.Protocol.Transcoder.BytesToString(seg.Value)
		if err != nil {
			return "", &BinaryParseError{Bytes: b, Offset: seg.Offset, Protocol: seg.Protocol.Name, Err: err}
		}

		// 路径协议的值自带前导斜杠
		if !seg.Protocol.Path || !strings.HasPrefix(value, "/") {
			sb.WriteString("/")
		}
		sb.WriteString(value)
	}

	return sb.String(), nil
}

// Validate 验证二进制多地址的格式
func (r *Registry) Validate(b []byte) error {
	segs, err := r.Segments(b)
	if err != nil {
		return err
	}

	for _, seg := range segs {
		if seg.Protocol.Size == 0 {
			continue
		}
		if seg.Protocol.Transcoder == nil {
			return &BinaryParseError{Bytes: b, Offset: seg.Offset, Protocol: seg.Protocol.Name, Err: errors.New("no transcoder registered")}
		}
		if err := seg.Protocol.Transcoder.ValidateBytes(seg.Value); err != nil {
			return &BinaryParseError{Bytes: b, Offset: seg.Offset, Protocol: seg.Protocol.Name, Err: err}
		}
	}

	return nil
}

// sizeForAddr 计算协议数据部分的大小
// 返回：(length_prefix_bytes, data_bytes, error)
//
// 无数据协议返回 (0, 0)，不前进游标；变长协议读取一个 varint
// 长度前缀；固定大小协议按位宽换算为字节。
func sizeForAddr(proto Protocol, b []byte) (int, int, error) {
	switch {
	case proto.Size == 0:
		return 0, 0, nil
	case proto.Size == LengthPrefixedVarSize:
		length, n, err := readVarintLength(b)
		if err != nil {
			return 0, 0, err
		}
		return n, length, nil
	default:
		return 0, proto.Size / 8, nil
	}
}
