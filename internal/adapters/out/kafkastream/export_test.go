package kafkastream

var NewStreamWithWriter = newStreamWithWriter
