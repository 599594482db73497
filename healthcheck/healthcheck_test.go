package main_test

import (
	"bufio"
	"io"
	"net"
	"os"
	"os/exec"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/onsi/gomega/gbytes"
	"github.com/onsi/gomega/gexec"
)

var _ = Describe("HealthCheck", func() {
	runHealthCheck := func(addr string) *gexec.Session {
		cmd := exec.Command(healthCheck, "-addr", addr, "-timeout", "500ms")
		cmd.Env = append(os.Environ(), "REDIS_PASS=s3cr3t")
		session, err := gexec.Start(cmd, GinkgoWriter, GinkgoWriter)
		Expect(err).NotTo(HaveOccurred())
		return session
	}

	Context("when the server is up and the password matches", func() {
		var fake *fakeRedis

		BeforeEach(func() {
			fake = startFakeRedis("s3cr3t")
		})

		AfterEach(func() {
			fake.close()
		})

		It("exits 0 and logs it passed", func() {
			session := runHealthCheck(fake.addr)
			Eventually(session).Should(gexec.Exit(0))
			Expect(session.Out).To(gbytes.Say("healthcheck passed"))
		})
	})

	Context("when the server rejects the password", func() {
		var fake *fakeRedis

		BeforeEach(func() {
			fake = startFakeRedis("other-password")
		})

		AfterEach(func() {
			fake.close()
		})

		It("exits 1 and logs it failed", func() {
			session := runHealthCheck(fake.addr)
			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Out).To(gbytes.Say("healthcheck failed"))
		})
	})

	Context("when nothing is listening", func() {
		It("exits 1 and logs it failed", func() {
			listener, err := net.Listen("tcp", "127.0.0.1:0")
			Expect(err).NotTo(HaveOccurred())
			addr := listener.Addr().String()
			Expect(listener.Close()).To(Succeed())

			session := runHealthCheck(addr)
			Eventually(session).Should(gexec.Exit(1))
			Expect(session.Out).To(gbytes.Say("healthcheck failed"))
		})
	})
})

// fakeRedis speaks just enough RESP to answer the client handshake: HELLO is
// rejected the way a pre-6 redis would, AUTH is checked against the expected
// password, PING answers PONG.
type fakeRedis struct {
	addr     string
	listener net.Listener
}

func startFakeRedis(password string) *fakeRedis {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	Expect(err).NotTo(HaveOccurred())

	fake := &fakeRedis{
		addr:     listener.Addr().String(),
		listener: listener,
	}

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			go fake.serve(conn, password)
		}
	}()

	return fake
}

func (f *fakeRedis) close() {
	f.listener.Close()
}

func (f *fakeRedis) serve(conn net.Conn, password string) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	for {
		args, err := readCommand(reader)
		if err != nil {
			return
		}
		if len(args) == 0 {
			continue
		}

		switch strings.ToUpper(args[0]) {
		case "HELLO":
			io.WriteString(conn, "-ERR unknown command 'HELLO'\r\n")
		case "AUTH":
			if args[len(args)-1] == password {
				io.WriteString(conn, "+OK\r\n")
			} else {
				io.WriteString(conn, "-ERR invalid password\r\n")
			}
		case "PING":
			io.WriteString(conn, "+PONG\r\n")
		default:
			io.WriteString(conn, "+OK\r\n")
		}
	}
}

func readCommand(reader *bufio.Reader) ([]string, error) {
	header, err := reader.ReadString('\n')
	if err != nil {
		return nil, err
	}
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "*") {
		return nil, io.ErrUnexpectedEOF
	}

	count, err := strconv.Atoi(header[1:])
	if err != nil {
		return nil, err
	}

	args := make([]string, 0, count)
	for i := 0; i < count; i++ {
		sizeLine, err := reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeLine = strings.TrimSpace(sizeLine)
		if !strings.HasPrefix(sizeLine, "$") {
			return nil, io.ErrUnexpectedEOF
		}

		size, err := strconv.Atoi(sizeLine[1:])
		if err != nil {
			return nil, err
		}

		buf := make([]byte, size+2)
		if _, err := io.ReadFull(reader, buf); err != nil {
			return nil, err
		}
		args = append(args, string(buf[:size]))
	}

	return args, nil
}
