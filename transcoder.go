package multiaddr

import (
	"encoding/base32"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

// Transcoder 接口定义了协议数据的编解码方法
type Transcoder interface {
	// StringToBytes 将字符串值转换为字节
	StringToBytes(string) ([]byte, error)

	// BytesToString 将字节转换为字符串值
	BytesToString([]byte) (string, error)

	// ValidateBytes 验证字节数据是否有效
	ValidateBytes([]byte) error
}

// NewTranscoderFromFunctions 从函数创建 Transcoder
func NewTranscoderFromFunctions(
	s2b func(string) ([]byte, error),
	b2s func([]byte) (string, error),
	val func([]byte) error,
) Transcoder {
	return &transcoderWrapper{s2b, b2s, val}
}

type transcoderWrapper struct {
	stringToBytes func(string) ([]byte, error)
	bytesToString func([]byte) (string, error)
	validateBytes func([]byte) error
}

func (t *transcoderWrapper) StringToBytes(s string) ([]byte, error) {
	return t.stringToBytes(s)
}

func (t *transcoderWrapper) BytesToString(b []byte) (string, error) {
	return t.bytesToString(b)
}

func (t *transcoderWrapper) ValidateBytes(b []byte) error {
	if t.validateBytes == nil {
		return nil
	}
	return t.validateBytes(b)
}

// IP4 Transcoder
var TranscoderIP4 = NewTranscoderFromFunctions(ip4StringToBytes, ip4BytesToString, nil)

func ip4StringToBytes(s string) ([]byte, error) {
	ip := net.ParseIP(s)
	if ip == nil || strings.Contains(s, ":") {
		return nil, fmt.Errorf("failed to parse ip4 addr: %s", s)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return nil, fmt.Errorf("failed to parse ip4 addr: %s", s)
	}
	return ip4, nil
}

func ip4BytesToString(b []byte) (string, error) {
	if len(b) != 4 {
		return "", fmt.Errorf("invalid ip4 length: %d", len(b))
	}
	return net.IP(b).String(), nil
}

// IP6 Transcoder
var TranscoderIP6 = NewTranscoderFromFunctions(ip6StringToBytes, ip6BytesToString, nil)

func ip6StringToBytes(s string) ([]byte, error) {
	// 纯 IPv4 字面量不是合法的 ip6 值
	if !strings.Contains(s, ":") {
		return nil, fmt.Errorf("failed to parse ip6 addr: %s", s)
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return nil, fmt.Errorf("failed to parse ip6 addr: %s", s)
	}
	return ip.To16(), nil
}

func ip6BytesToString(b []byte) (string, error) {
	if len(b) != 16 {
		return "", fmt.Errorf("invalid ip6 length: %d", len(b))
	}
	ip := net.IP(b)
	// 处理 IPv4-mapped IPv6 地址
	if ip4 := ip.To4(); ip4 != nil {
		return "::ffff:" + ip4.String(), nil
	}
	return ip.String(), nil
}

// IP6Zone Transcoder
var TranscoderIP6Zone = NewTranscoderFromFunctions(ip6ZoneStringToBytes, ip6ZoneBytesToString, ip6ZoneValidateBytes)

func ip6ZoneStringToBytes(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, errors.New("empty ip6zone")
	}
	if strings.Contains(s, "/") {
		return nil, fmt.Errorf("IPv6 zone ID contains '/': %s", s)
	}
	return []byte(s), nil
}

func ip6ZoneBytesToString(b []byte) (string, error) {
	if err := ip6ZoneValidateBytes(b); err != nil {
		return "", err
	}
	return string(b), nil
}

func ip6ZoneValidateBytes(b []byte) error {
	if len(b) == 0 {
		return errors.New("invalid length (should be > 0)")
	}
	// 不支持 '/' 因为会破坏 multiaddr 解析
	if strings.Contains(string(b), "/") {
		return fmt.Errorf("IPv6 zone ID contains '/': %s", string(b))
	}
	return nil
}

// IPCIDR Transcoder
var TranscoderIPCIDR = NewTranscoderFromFunctions(ipCIDRStringToBytes, ipCIDRBytesToString, nil)

func ipCIDRStringToBytes(s string) ([]byte, error) {
	ipMask, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return nil, err
	}
	return []byte{byte(ipMask)}, nil
}

func ipCIDRBytesToString(b []byte) (string, error) {
	if len(b) != 1 {
		return "", errors.New("invalid length (should be == 1)")
	}
	return strconv.Itoa(int(b[0])), nil
}

// Port Transcoder (TCP/UDP/SCTP/DCCP)
var TranscoderPort = NewTranscoderFromFunctions(portStringToBytes, portBytesToString, portValidateBytes)

func portStringToBytes(s string) ([]byte, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to parse port: %s", err)
	}
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(port))
	return b, nil
}

func portBytesToString(b []byte) (string, error) {
	if len(b) != 2 {
		return "", fmt.Errorf("invalid port length: %d", len(b))
	}
	port := binary.BigEndian.Uint16(b)
	return strconv.Itoa(int(port)), nil
}

func portValidateBytes(b []byte) error {
	if len(b) != 2 {
		return fmt.Errorf("invalid port length: %d", len(b))
	}
	return nil
}

// DNS Transcoder (DNS/DNS4/DNS6/DNSADDR)
//
// 二进制形式存储 UTF-8 的原始名称，合法性按照 IDNA2008 的
// lookup 规则校验。
var TranscoderDNS = NewTranscoderFromFunctions(dnsStringToBytes, dnsBytesToString, dnsValidateBytes)

func dnsStringToBytes(s string) ([]byte, error) {
	if err := validateDNSName(s); err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func dnsBytesToString(b []byte) (string, error) {
	if err := validateDNSName(string(b)); err != nil {
		return "", err
	}
	return string(b), nil
}

func dnsValidateBytes(b []byte) error {
	return validateDNSName(string(b))
}

func validateDNSName(s string) error {
	if len(s) == 0 {
		return errors.New("empty DNS name")
	}
	if strings.Contains(s, "/") {
		return fmt.Errorf("DNS name contains '/': %s", s)
	}
	if _, err := idna.Lookup.ToASCII(s); err != nil {
		return fmt.Errorf("invalid DNS name %q: %w", s, err)
	}
	return nil
}

// Unix Transcoder
var TranscoderUnix = NewTranscoderFromFunctions(unixStringToBytes, unixBytesToString, nil)

func unixStringToBytes(s string) ([]byte, error) {
	if len(s) == 0 || s == "/" {
		return nil, errors.New("empty unix path")
	}
	return []byte(s), nil
}

func unixBytesToString(b []byte) (string, error) {
	if len(b) == 0 {
		return "", errors.New("invalid unix path length")
	}
	return string(b), nil
}

// Onion Transcoder
var TranscoderOnion = NewTranscoderFromFunctions(onionStringToBytes, onionBytesToString, nil)

func onionStringToBytes(s string) ([]byte, error) {
	addr := strings.Split(s, ":")
	if len(addr) != 2 {
		return nil, fmt.Errorf("invalid onion address: %s (must be <host>:<port>)", s)
	}

	// Onion 主机名是 16 字符的 base32（10 字节）
	if len(addr[0]) != 16 {
		return nil, fmt.Errorf("invalid onion host length: %d (should be 16)", len(addr[0]))
	}
	onionHost, err := base32.StdEncoding.DecodeString(strings.ToUpper(addr[0]))
	if err != nil {
		return nil, fmt.Errorf("failed to decode onion address: %w", err)
	}

	port, err := onionPortToBytes(addr[1])
	if err != nil {
		return nil, err
	}

	// 组装：10 字节地址 + 2 字节端口
	result := make([]byte, 12)
	copy(result[:10], onionHost)
	copy(result[10:], port)

	return result, nil
}

func onionBytesToString(b []byte) (string, error) {
	if len(b) != 12 {
		return "", fmt.Errorf("invalid onion length: %d", len(b))
	}

	addr := strings.ToLower(base32.StdEncoding.EncodeToString(b[:10]))
	port := binary.BigEndian.Uint16(b[10:])

	return fmt.Sprintf("%s:%d", addr, port), nil
}

// Onion3 Transcoder
var TranscoderOnion3 = NewTranscoderFromFunctions(onion3StringToBytes, onion3BytesToString, nil)

func onion3StringToBytes(s string) ([]byte, error) {
	addr := strings.Split(s, ":")
	if len(addr) != 2 {
		return nil, fmt.Errorf("invalid onion3 address: %s (must be <host>:<port>)", s)
	}

	// Onion3 主机名是 56 字符的 base32（去掉 .onion 后缀，35 字节）
	onionHost := strings.TrimSuffix(addr[0], ".onion")
	if len(onionHost) != 56 {
		return nil, fmt.Errorf("invalid onion3 host length: %d (should be 56)", len(onionHost))
	}
	hostBytes, err := base32.StdEncoding.DecodeString(strings.ToUpper(onionHost))
	if err != nil {
		return nil, fmt.Errorf("failed to decode onion3 address: %w", err)
	}

	port, err := onionPortToBytes(addr[1])
	if err != nil {
		return nil, err
	}

	// 组装：35 字节地址 + 2 字节端口
	result := make([]byte, 37)
	copy(result[:35], hostBytes)
	copy(result[35:], port)

	return result, nil
}

func onion3BytesToString(b []byte) (string, error) {
	if len(b) != 37 {
		return "", fmt.Errorf("invalid onion3 length: %d", len(b))
	}

	addr := strings.ToLower(base32.StdEncoding.EncodeToString(b[:35]))
	port := binary.BigEndian.Uint16(b[35:])

	return fmt.Sprintf("%s:%d", addr, port), nil
}

// onionPortToBytes 解析 onion 端口，合法范围 1..65535
func onionPortToBytes(s string) ([]byte, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to parse onion port: %w", err)
	}
	if port == 0 {
		return nil, errors.New("onion port must be in range [1, 65535]")
	}
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, uint16(port))
	return b, nil
}

// garlicBase64 是 I2P 使用的 base64 变体（'-' 和 '~' 代替 '+' 和 '/'）
var garlicBase64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-~").WithPadding(base64.NoPadding)

// Garlic64 Transcoder（I2P 完整目的地地址）
var TranscoderGarlic64 = NewTranscoderFromFunctions(garlic64StringToBytes, garlic64BytesToString, garlic64ValidateBytes)

func garlic64StringToBytes(s string) ([]byte, error) {
	b, err := garlicBase64.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return nil, fmt.Errorf("failed to decode garlic64 address: %w", err)
	}
	if err := garlic64ValidateBytes(b); err != nil {
		return nil, err
	}
	return b, nil
}

func garlic64BytesToString(b []byte) (string, error) {
	if err := garlic64ValidateBytes(b); err != nil {
		return "", err
	}
	return garlicBase64.EncodeToString(b), nil
}

func garlic64ValidateBytes(b []byte) error {
	// I2P 目的地：386 字节证书基础结构 + 可变扩展
	if len(b) < 386 {
		return fmt.Errorf("invalid garlic64 length: %d (should be >= 386)", len(b))
	}
	return nil
}

// garlicBase32 是无填充的 base32
var garlicBase32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// Garlic32 Transcoder（I2P 短地址）
var TranscoderGarlic32 = NewTranscoderFromFunctions(garlic32StringToBytes, garlic32BytesToString, garlic32ValidateBytes)

func garlic32StringToBytes(s string) ([]byte, error) {
	b, err := garlicBase32.DecodeString(strings.ToUpper(strings.TrimRight(s, "=")))
	if err != nil {
		return nil, fmt.Errorf("failed to decode garlic32 address: %w", err)
	}
	if err := garlic32ValidateBytes(b); err != nil {
		return nil, err
	}
	return b, nil
}

func garlic32BytesToString(b []byte) (string, error) {
	if err := garlic32ValidateBytes(b); err != nil {
		return "", err
	}
	return strings.ToLower(garlicBase32.EncodeToString(b)), nil
}

func garlic32ValidateBytes(b []byte) error {
	// 32 字节哈希，或 >= 35 字节的编码 PublicKey+Cert
	if len(b) != 32 && len(b) < 35 {
		return fmt.Errorf("invalid garlic32 length: %d (should be == 32 or >= 35)", len(b))
	}
	return nil
}
